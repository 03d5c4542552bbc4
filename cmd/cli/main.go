package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	timeout time.Duration
)

// Swappable for tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "courierpay-cli",
		Short: "CourierPay CLI tool",
		Long:  `A command line interface for interacting with the CourierPay API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the CourierPay API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Parcel commands
	parcelCmd := &cobra.Command{
		Use:   "parcel",
		Short: "Parcel operations",
	}

	parcelGetCmd := &cobra.Command{
		Use:   "get [parcel-id]",
		Short: "Fetch a parcel by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/parcels/" + args[0])
		},
	}

	parcelListCmd := &cobra.Command{
		Use:   "list [rider-id]",
		Short: "List a rider's parcels",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			listParcels(args[0])
		},
	}

	parcelCmd.AddCommand(parcelGetCmd, parcelListCmd)
	rootCmd.AddCommand(parcelCmd)

	// Rider commands
	riderCmd := &cobra.Command{
		Use:   "rider",
		Short: "Rider operations",
	}

	earningsCmd := &cobra.Command{
		Use:   "earnings [rider-id]",
		Short: "Show a rider's earnings summary",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/riders/" + args[0] + "/earnings")
		},
	}

	cashoutCmd := &cobra.Command{
		Use:   "cashout [rider-id] [amount]",
		Short: "Request a cash-out for a rider",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			requestCashout(args[0], args[1])
		},
	}

	riderCmd.AddCommand(earningsCmd, cashoutCmd)
	rootCmd.AddCommand(riderCmd)

	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Hash a password for seeding users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func listParcels(riderID string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/riders/" + riderID + "/parcels")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var parcels []map[string]any
	if err := json.Unmarshal(body, &parcels); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-18s %-26s %-10s %-10s\n", "ID", "STATUS", "EARNING", "PAID")
	for _, p := range parcels {
		fmt.Printf("%-18s %-26s %-10v %-10v\n",
			truncate(fmt.Sprint(p["id"]), 18),
			truncate(fmt.Sprint(p["delivery_status"]), 26),
			p["earning"], p["paid_amount"])
	}
}

func requestCashout(riderID, amount string) {
	payload, _ := json.Marshal(map[string]string{
		"rider_id": riderID,
		"amount":   amount,
	})

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/cashouts", "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Cash-out failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Cash-out settled")
	printJSON(result)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
