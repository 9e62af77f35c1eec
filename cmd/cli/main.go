package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/tellerledger/internal/adapter/http/dto"
)

const statementDateLayout = "02-01-2006 15:04:05"

// options are the persistent flags shared by every command.
type options struct {
	baseURL string
	timeout time.Duration
	json    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "tellerctl",
		Short:        "TellerLedger CLI tool",
		Long:         `A command line interface for interacting with the TellerLedger API.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the TellerLedger API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Print raw JSON responses")

	rootCmd.AddCommand(
		customerCmd(opts),
		accountCmd(opts),
		transactionCmd(opts, "deposit", "Deposit into a customer's account", "deposits"),
		transactionCmd(opts, "withdraw", "Withdraw from a customer's account", "withdrawals"),
		statementCmd(opts),
	)

	return rootCmd
}

func customerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Customer operations",
	}

	var req dto.CreateCustomerRequest
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.CustomerResponse
			if err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/customers", &req, "", &resp); err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), resp, func(w io.Writer) {
				fmt.Fprintf(w, "=== Customer %s created ===\n", resp.Key)
			})
		},
	}
	createCmd.Flags().StringVar(&req.Key, "key", "", "Customer key (letters, digits, '.' or '-')")
	createCmd.Flags().StringVar(&req.Name, "name", "", "Full name")
	createCmd.Flags().StringVar(&req.BirthDate, "birth-date", "", "Birth date (YYYY-MM-DD or DD-MM-YYYY)")
	createCmd.Flags().StringVar(&req.Address, "address", "", "Address")
	createCmd.MarkFlagRequired("key")
	createCmd.MarkFlagRequired("name")
	createCmd.MarkFlagRequired("birth-date")

	getCmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Show a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.CustomerResponse
			if err := opts.client().do(cmd.Context(), http.MethodGet, customerPath(args[0]), nil, "", &resp); err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), resp, func(w io.Writer) {
				printCustomer(w, resp)
			})
		},
	}

	cmd.AddCommand(createCmd, getCmd)
	return cmd
}

func accountCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var (
		accountType    string
		limit          string
		maxWithdrawals int
	)
	createCmd := &cobra.Command{
		Use:   "create KEY",
		Short: "Open an account for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CreateAccountRequest{Type: accountType}
			if cmd.Flags().Changed("limit") {
				req.PerOperationLimit = &limit
			}
			if cmd.Flags().Changed("max-withdrawals") {
				req.MaxWithdrawals = &maxWithdrawals
			}

			var resp dto.AccountResponse
			if err := opts.client().do(cmd.Context(), http.MethodPost, customerPath(args[0], "accounts"), &req, "", &resp); err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), resp, func(w io.Writer) {
				fmt.Fprintln(w, "=== Account created ===")
				printAccount(w, resp)
			})
		},
	}
	createCmd.Flags().StringVar(&accountType, "type", "", "Account type (basic|checking)")
	createCmd.Flags().StringVar(&limit, "limit", "", "Per-withdrawal limit (checking)")
	createCmd.Flags().IntVar(&maxWithdrawals, "max-withdrawals", 0, "Lifetime withdrawal cap (checking)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ListResponse[dto.AccountResponse]
			if err := opts.client().do(cmd.Context(), http.MethodGet, "/api/v1/accounts", nil, "", &resp); err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), resp, func(w io.Writer) {
				for _, account := range resp.Items {
					fmt.Fprintln(w, strings.Repeat("=", 50))
					printAccount(w, account)
				}
			})
		},
	}

	cmd.AddCommand(createCmd, listCmd)
	return cmd
}

func transactionCmd(opts *options, use, short, resource string) *cobra.Command {
	var (
		account        int
		idempotencyKey string
	)

	cmd := &cobra.Command{
		Use:   use + " KEY AMOUNT",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.TransactionRequest{Amount: args[1], Account: account}

			var resp dto.TransactionResponse
			if err := opts.client().do(cmd.Context(), http.MethodPost, customerPath(args[0], resource), &req, idempotencyKey, &resp); err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), resp, func(w io.Writer) {
				fmt.Fprintf(w, "=== %s of R$ %s applied ===\n", resp.Entry.Kind, resp.Entry.Amount)
				fmt.Fprintf(w, "Balance:\tR$ %s\n", resp.Account.Balance)
			})
		},
	}
	cmd.Flags().IntVar(&account, "account", 0, "Account number (defaults to the customer's first account)")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key for safe retries")

	return cmd
}

func statementCmd(opts *options) *cobra.Command {
	var (
		account int
		kind    string
	)

	cmd := &cobra.Command{
		Use:   "statement KEY",
		Short: "Show an account statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := customerPath(args[0], "statement")
			query := url.Values{}
			if account > 0 {
				query.Set("account", strconv.Itoa(account))
			}
			if kind != "" {
				query.Set("kind", kind)
			}
			if len(query) > 0 {
				path += "?" + query.Encode()
			}

			var resp dto.StatementResponse
			if err := opts.client().do(cmd.Context(), http.MethodGet, path, nil, "", &resp); err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), resp, func(w io.Writer) {
				printStatement(w, resp)
			})
		},
	}
	cmd.Flags().IntVar(&account, "account", 0, "Account number (defaults to the customer's first account)")
	cmd.Flags().StringVar(&kind, "kind", "", "Only show Deposit or Withdrawal entries")

	return cmd
}

// customerPath builds /api/v1/customers/{key}[/sub...] with the key escaped.
func customerPath(key string, sub ...string) string {
	path := "/api/v1/customers/" + url.PathEscape(key)
	for _, s := range sub {
		path += "/" + s
	}
	return path
}

func (o *options) client() *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(o.baseURL, "/"),
		http:    &http.Client{Timeout: o.timeout},
	}
}

// print writes v as indented JSON when --json is set, otherwise runs text.
func (o *options) print(w io.Writer, v any, text func(io.Writer)) error {
	if o.json {
		return printJSON(w, v)
	}
	text(w)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCustomer(w io.Writer, c dto.CustomerResponse) {
	fmt.Fprintf(w, "Key:\t\t%s\n", c.Key)
	fmt.Fprintf(w, "Name:\t\t%s\n", c.Name)
	fmt.Fprintf(w, "Birth date:\t%s\n", c.BirthDate)
	fmt.Fprintf(w, "Address:\t%s\n", c.Address)

	accounts := make([]string, len(c.Accounts))
	for i, n := range c.Accounts {
		accounts[i] = strconv.Itoa(n)
	}
	fmt.Fprintf(w, "Accounts:\t%s\n", strings.Join(accounts, ", "))
}

func printAccount(w io.Writer, a dto.AccountResponse) {
	fmt.Fprintf(w, "Agency:\t\t%s\n", a.Agency)
	fmt.Fprintf(w, "Number:\t\t%d\n", a.Number)
	fmt.Fprintf(w, "Holder:\t\t%s\n", a.OwnerName)
	fmt.Fprintf(w, "Balance:\tR$ %s\n", a.Balance)
}

func printStatement(w io.Writer, s dto.StatementResponse) {
	fmt.Fprintln(w, "====== STATEMENT ======")
	if len(s.Entries) == 0 {
		fmt.Fprintln(w, "No transactions recorded.")
	}
	for _, e := range s.Entries {
		fmt.Fprintf(w, "%s - %s: R$ %s\n", e.Timestamp.Format(statementDateLayout), e.Kind, e.Amount)
	}
	fmt.Fprintf(w, "\nCurrent balance: R$ %s\n", s.Balance)
	fmt.Fprintln(w, "=======================")
}

// apiClient is a minimal JSON client for the TellerLedger API.
type apiClient struct {
	http    *http.Client
	baseURL string
}

// apiError is a non-2xx API response.
type apiError struct {
	Body   dto.ErrorResponse
	Status int
}

func (e *apiError) Error() string {
	switch {
	case e.Body.Message != "":
		return fmt.Sprintf("%s (%s): %s", e.Body.Error, e.Body.Code, e.Body.Message)
	case e.Body.Code != "":
		return fmt.Sprintf("%s (%s)", e.Body.Error, e.Body.Code)
	default:
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
}

func (c *apiClient) do(ctx context.Context, method, path string, body any, idempotencyKey string, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &apiError{Status: resp.StatusCode}
		_ = json.Unmarshal(data, &apiErr.Body)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
