// Seeds a running backend with demo expense records through the public JSON
// API. The backend must be started with SKIP_AUTH=true (or ENV=local) so the
// impersonation header is honored.
//
// Usage:
//
//	API_URL=http://localhost:8180 USER_ID=local-dev-user go run ./scripts/seed-data
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

type seedRecord struct {
	Description string
	Amount      string
	Category    string
	DaysAgo     int
}

var demoRecords = []seedRecord{
	{"Weekly groceries", "86.40", "Food", 1},
	{"Coffee with team", "14.50", "Food", 2},
	{"Monthly transit pass", "120.00", "Transport", 3},
	{"Electricity bill", "74.20", "Utilities", 5},
	{"Cinema tickets", "32.00", "Entertainment", 6},
	{"Pharmacy", "18.75", "Health", 8},
	{"Refund for returned jacket", "-45.00", "Shopping", 10},
	{"Takeaway dinner", "27.90", "Food", 12},
	{"Gym membership", "49.00", "Health", 15},
	{"Streaming subscription", "11.99", "Entertainment", 20},
}

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8180"
	}
	userID := os.Getenv("USER_ID")
	if userID == "" {
		userID = "local-dev-user"
	}

	log.Printf("🌱 Seeding expenses for user: %s", userID)
	log.Printf("📡 API URL: %s", apiURL)

	client := &http.Client{Timeout: 10 * time.Second}

	for _, rec := range demoRecords {
		date := time.Now().UTC().AddDate(0, 0, -rec.DaysAgo).Format("2006-01-02")
		if err := createRecord(client, apiURL, userID, rec, date); err != nil {
			log.Fatalf("Failed to seed %q: %v", rec.Description, err)
		}
		log.Printf("  ✓ %s (%s, %s)", rec.Description, rec.Amount, date)
	}

	log.Println("✅ Successfully seeded all demo records!")

	log.Println("🔍 Verifying seeded data is queryable...")
	count, err := countRecords(client, apiURL, userID)
	if err != nil {
		log.Fatalf("❌ Verification failed: %v", err)
	}
	if count < len(demoRecords) {
		log.Fatalf("❌ Expected at least %d records, found %d", len(demoRecords), count)
	}
	log.Printf("✅ Verified: %d records visible via the API", count)
}

func createRecord(client *http.Client, apiURL, userID string, rec seedRecord, date string) error {
	body, err := json.Marshal(map[string]string{
		"description": rec.Description,
		"amount":      rec.Amount,
		"category":    rec.Category,
		"date":        date,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, apiURL+"/api/records", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Debug-Impersonate-User", userID)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %d (is the backend running with SKIP_AUTH=true?)", resp.StatusCode)
	}
	return nil
}

func countRecords(client *http.Client, apiURL, userID string) (int, error) {
	req, err := http.NewRequest(http.MethodGet, apiURL+"/api/records?limit=100", nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("X-Debug-Impersonate-User", userID)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed struct {
		Records []json.RawMessage `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, err
	}
	return len(parsed.Records), nil
}
