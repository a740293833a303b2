package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

type orderRequest struct {
	ItemName string `json:"item_name"`
	Number   int    `json:"number"`
}

type itemResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "ledger base URL")
		itemName = flag.String("item", "stress-item", "item to order against")
		restock  = flag.Int("restock", 20, "stock to add before the run")
		requests = flag.Int("requests", 50, "concurrent order requests")
	)
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	// Top up stock so the run has something to contend for
	if err := postJSON(client, *baseURL+"/api/restock", orderRequest{ItemName: *itemName, Number: *restock}); err != nil {
		log.Fatalf("restock failed: %v", err)
	}

	before, err := getQuantity(client, *baseURL, *itemName)
	if err != nil {
		log.Fatalf("failed to read quantity: %v", err)
	}

	var successCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := postJSON(client, *baseURL+"/api/orders", orderRequest{ItemName: *itemName, Number: 1})
			if err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	after, err := getQuantity(client, *baseURL, *itemName)
	if err != nil {
		log.Fatalf("failed to read quantity: %v", err)
	}

	success := successCount.Load()
	fail := failCount.Load()

	fmt.Println("========== STRESS RESULTS ==========")
	fmt.Printf("Quantity Before:  %d\n", before)
	fmt.Printf("Total Requests:   %d\n", *requests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Quantity After:   %d\n", after)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("====================================")

	if before-after == int(success) {
		fmt.Println("PASS: quantity dropped by exactly the number of successful orders")
	} else {
		fmt.Printf("FAIL: quantity dropped by %d, expected %d\n", before-after, success)
	}
}

func postJSON(client *http.Client, url string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func getQuantity(client *http.Client, baseURL, itemName string) (int, error) {
	resp, err := client.Get(baseURL + "/api/items/" + itemName)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("status %d", resp.StatusCode)
	}

	var item itemResponse
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return 0, err
	}
	return item.Quantity, nil
}
