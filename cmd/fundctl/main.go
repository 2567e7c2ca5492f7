package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fundctl",
		Short: "Fund ledger CLI tool",
		Long:  `A command line interface for interacting with the fund ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the fund ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(investorCmd())
	rootCmd.AddCommand(depositCmd())
	rootCmd.AddCommand(withdrawCmd())
	rootCmd.AddCommand(navCmd())
	rootCmd.AddCommand(transactionsCmd())
	rootCmd.AddCommand(feesCmd())
	rootCmd.AddCommand(balanceCmd())
	rootCmd.AddCommand(performanceCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func investorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "investor",
		Short: "Investor operations",
	}

	var name, email, phone, joinDate string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new investor",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/investors", map[string]any{
				"name":      name,
				"email":     email,
				"phone":     phone,
				"join_date": joinDate,
			})
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Investor name")
	addCmd.Flags().StringVar(&email, "email", "", "Contact email")
	addCmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	addCmd.Flags().StringVar(&joinDate, "join-date", "", "Join date (YYYY-MM-DD)")
	_ = addCmd.MarkFlagRequired("name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List investors",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/investors", nil)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single investor",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/investors/"+args[0], nil)
		},
	}

	cmd.AddCommand(addCmd, listCmd, getCmd)
	return cmd
}

func depositCmd() *cobra.Command {
	var investorID int64
	var amount, nav, date string
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Record a deposit",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/deposits", map[string]any{
				"investor_id":     investorID,
				"amount":          amount,
				"total_nav_after": nav,
				"date":            date,
			})
		},
	}
	cmd.Flags().Int64Var(&investorID, "investor", 0, "Investor ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Deposit amount")
	cmd.Flags().StringVar(&nav, "nav", "", "Total fund NAV after the deposit")
	cmd.Flags().StringVar(&date, "date", "", "Value date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("investor")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("nav")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func withdrawCmd() *cobra.Command {
	var investorID int64
	var amount, nav, date string
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Record a withdrawal",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/withdrawals", map[string]any{
				"investor_id":     investorID,
				"amount":          amount,
				"total_nav_after": nav,
				"date":            date,
			})
		},
	}
	cmd.Flags().Int64Var(&investorID, "investor", 0, "Investor ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Withdrawal amount")
	cmd.Flags().StringVar(&nav, "nav", "", "Total fund NAV after the withdrawal")
	cmd.Flags().StringVar(&date, "date", "", "Value date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("investor")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("nav")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func navCmd() *cobra.Command {
	var total, date string
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Record a fund-wide NAV mark",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/nav", map[string]any{
				"total_nav": total,
				"date":      date,
			})
		},
	}
	cmd.Flags().StringVar(&total, "total", "", "Total fund NAV")
	cmd.Flags().StringVar(&date, "date", "", "Valuation date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("total")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func transactionsCmd() *cobra.Command {
	var investorID int64
	var limit int
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Transaction operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			q := url.Values{}
			if investorID != 0 {
				q.Set("investor_id", fmt.Sprintf("%d", investorID))
			}
			if limit != 0 {
				q.Set("limit", fmt.Sprintf("%d", limit))
			}
			path := "/api/v1/transactions"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}
			doRequest(http.MethodGet, path, nil)
		},
	}
	listCmd.Flags().Int64Var(&investorID, "investor", 0, "Filter by investor ID")
	listCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of transactions")

	undoCmd := &cobra.Command{
		Use:   "undo <transaction-id>",
		Short: "Undo the most recent transaction",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/transactions/"+args[0]+"/undo", nil)
		},
	}

	cmd.AddCommand(listCmd, undoCmd)
	return cmd
}

func feesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fees",
		Short: "Performance fee operations",
	}

	var previewDate, previewNAV string
	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview performance fees without charging them",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/fees/preview", map[string]any{
				"as_of_date": previewDate,
				"total_nav":  previewNAV,
			})
		},
	}
	previewCmd.Flags().StringVar(&previewDate, "date", "", "Valuation date (YYYY-MM-DD)")
	previewCmd.Flags().StringVar(&previewNAV, "nav", "", "Total fund NAV at the valuation date")
	_ = previewCmd.MarkFlagRequired("date")
	_ = previewCmd.MarkFlagRequired("nav")

	var applyDate, applyNAV, confirmToken string
	var ackRisk, ackBackup bool
	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Charge performance fees using a preview confirm token",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/fees/apply", map[string]any{
				"as_of_date":         applyDate,
				"total_nav":          applyNAV,
				"confirm_token":      confirmToken,
				"acknowledge_risk":   ackRisk,
				"acknowledge_backup": ackBackup,
			})
		},
	}
	applyCmd.Flags().StringVar(&applyDate, "date", "", "Valuation date (YYYY-MM-DD)")
	applyCmd.Flags().StringVar(&applyNAV, "nav", "", "Total fund NAV at the valuation date")
	applyCmd.Flags().StringVar(&confirmToken, "confirm-token", "", "Confirm token from a matching preview")
	applyCmd.Flags().BoolVar(&ackRisk, "ack-risk", false, "Acknowledge that fees permanently move units")
	applyCmd.Flags().BoolVar(&ackBackup, "ack-backup", false, "Acknowledge that a backup exists")
	_ = applyCmd.MarkFlagRequired("date")
	_ = applyCmd.MarkFlagRequired("nav")
	_ = applyCmd.MarkFlagRequired("confirm-token")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the global fee rates and per-investor overrides",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/fees/config", nil)
		},
	}

	cmd.AddCommand(previewCmd, applyCmd, configCmd)
	return cmd
}

func balanceCmd() *cobra.Command {
	var nav string
	cmd := &cobra.Command{
		Use:   "balance <investor-id>",
		Short: "Show an investor's balance at a given NAV",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/investors/"+args[0]+"/balance?total_nav="+url.QueryEscape(nav), nil)
		},
	}
	cmd.Flags().StringVar(&nav, "nav", "", "Total fund NAV to value the holdings at")
	_ = cmd.MarkFlagRequired("nav")
	return cmd
}

func performanceCmd() *cobra.Command {
	var nav string
	cmd := &cobra.Command{
		Use:   "performance <investor-id>",
		Short: "Show an investor's lifetime performance at a given NAV",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/investors/"+args[0]+"/performance?total_nav="+url.QueryEscape(nav), nil)
		},
	}
	cmd.Flags().StringVar(&nav, "nav", "", "Total fund NAV to value the holdings at")
	_ = cmd.MarkFlagRequired("nav")
	return cmd
}

func doRequest(method, path string, payload map[string]any) {
	client := &http.Client{Timeout: timeout}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	if len(respBody) == 0 {
		fmt.Printf("OK (Status: %d)\n", resp.StatusCode)
		return
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
		fmt.Println(string(respBody))
		return
	}
	fmt.Println(pretty.String())
}
