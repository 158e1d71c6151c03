package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"
)

// JoinResult contains metrics for a single join request
type JoinResult struct {
	Mobile       string
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	StatusCounts       map[int]int
	Lock               sync.Mutex
}

type client struct {
	baseURL string
	http    *http.Client
}

type authResponse struct {
	Token string `json:"token"`
}

type matchResponse struct {
	ID          string `json:"id"`
	TotalSlots  int    `json:"totalSlots"`
	FilledSlots int    `json:"filledSlots"`
}

func (c *client) call(method, path, token string, body, out any) (int, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+"/api/v1"+path, payload)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func (c *client) login(mobile, password string) (string, error) {
	var auth authResponse
	status, err := c.call(http.MethodPost, "/auth/login", "", map[string]string{"mobile": mobile, "password": password}, &auth)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("login %s: HTTP %d", mobile, status)
	}
	return auth.Token, nil
}

func main() {
	concurrency := flag.Int("c", 10, "Number of concurrent goroutines")
	players := flag.Int("players", 60, "Players racing for the match")
	slots := flag.Int("slots", 48, "Match capacity")
	fee := flag.String("fee", "20 BDT", "Entry fee descriptor")
	balance := flag.String("balance", "100", "Balance given to every player before the race")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	adminMobile := flag.String("admin", "01700000000", "Admin mobile")
	adminPassword := flag.String("admin-password", "", "Admin password")
	delayMs := flag.Int("delay", 0, "Maximum random delay before each join in milliseconds")
	flag.Parse()

	c := &client{baseURL: *baseURL, http: &http.Client{Timeout: 10 * time.Second}}

	adminToken, err := c.login(*adminMobile, *adminPassword)
	if err != nil {
		fmt.Println("Admin login failed:", err)
		os.Exit(1)
	}

	var match matchResponse
	status, err := c.call(http.MethodPost, "/admin/matches", adminToken, map[string]any{
		"title":      fmt.Sprintf("Load Test %d", time.Now().Unix()),
		"entryFee":   *fee,
		"totalSlots": *slots,
	}, &match)
	if err != nil || status != http.StatusCreated {
		fmt.Printf("Creating the match failed: HTTP %d %v\n", status, err)
		os.Exit(1)
	}

	fmt.Printf("Match %s: %d slots, fee %s\n", match.ID, *slots, *fee)
	fmt.Printf("Preparing %d players with %s BDT each...\n", *players, *balance)

	tokens := make(map[string]string, *players)
	for i := 0; i < *players; i++ {
		mobile := fmt.Sprintf("0199%07d", i)
		// 409 means the player exists from an earlier run
		_, _ = c.call(http.MethodPost, "/auth/register", "", map[string]string{"mobile": mobile, "password": "loadtest"}, nil)
		token, err := c.login(mobile, "loadtest")
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if status, err := c.call(http.MethodPut, "/admin/accounts/"+mobile+"/balance", adminToken,
			map[string]string{"balance": *balance}, nil); err != nil || status != http.StatusOK {
			fmt.Printf("Funding %s failed: HTTP %d %v\n", mobile, status, err)
			os.Exit(1)
		}
		tokens[mobile] = token
	}

	stats := &TestStats{
		TotalRequests:   *players,
		MinResponseTime: time.Hour,
		ResponseTimes:   make([]time.Duration, 0, *players),
		StatusCounts:    make(map[int]int),
	}

	jobs := make(chan string, *players)
	results := make(chan JoinResult, *players)
	for mobile := range tokens {
		jobs <- mobile
	}
	close(jobs)

	var wg sync.WaitGroup
	startTime := time.Now()
	fmt.Println("Race running...")
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for mobile := range jobs {
				if *delayMs > 0 {
					time.Sleep(time.Duration(rand.IntN(*delayMs)) * time.Millisecond)
				}
				results <- join(c, match.ID, mobile, tokens[mobile])
			}
		}()
	}
	wg.Wait()
	close(results)
	stats.TotalTime = time.Since(startTime)

	for result := range results {
		stats.StatusCounts[result.StatusCode]++
		if result.Success {
			stats.SuccessfulRequests++
		} else {
			stats.FailedRequests++
		}
		stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
		stats.TotalResponseTime += result.ResponseTime
		stats.MinResponseTime = min(stats.MinResponseTime, result.ResponseTime)
		stats.MaxResponseTime = max(stats.MaxResponseTime, result.ResponseTime)
	}

	printResults(stats)
	verify(c, adminToken, match.ID, *slots, stats)
}

func join(c *client, matchID, mobile, token string) JoinResult {
	body := map[string]string{"uid": fmt.Sprintf("%d", 100000+rand.IntN(900000)), "gameName": "Load_" + mobile[len(mobile)-4:]}

	start := time.Now()
	status, err := c.call(http.MethodPost, "/matches/"+matchID+"/join", token, body, nil)
	return JoinResult{
		Mobile:       mobile,
		ResponseTime: time.Since(start),
		StatusCode:   status,
		Success:      err == nil && status == http.StatusCreated,
		Error:        err,
	}
}

// verify checks the match never overfilled and every slot belongs to one join
func verify(c *client, adminToken, matchID string, slots int, stats *TestStats) {
	var match matchResponse
	if _, err := c.call(http.MethodGet, "/matches/"+matchID, adminToken, nil, &match); err != nil {
		fmt.Println("Reading the match failed:", err)
		return
	}

	fmt.Println("\n================= CONSISTENCY =================")
	fmt.Printf("Filled slots:        %d / %d\n", match.FilledSlots, slots)
	fmt.Printf("Successful joins:    %d\n", stats.SuccessfulRequests)
	if match.FilledSlots == stats.SuccessfulRequests && match.FilledSlots <= slots {
		fmt.Println("✅ Every taken slot matches exactly one successful join")
	} else {
		fmt.Println("❌ Slot count and successful joins disagree")
	}
	fmt.Println("================================================")
}

func printResults(stats *TestStats) {
	tps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		sorted := make([]time.Duration, len(stats.ResponseTimes))
		copy(sorted, stats.ResponseTimes)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		p50 = sorted[len(sorted)*50/100]
		p90 = sorted[len(sorted)*90/100]
		p95 = sorted[len(sorted)*95/100]
		p99 = sorted[len(sorted)*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Joins:         %d\n", stats.TotalRequests)
	fmt.Printf("Successful Joins:    %d\n", stats.SuccessfulRequests)
	fmt.Printf("Rejected Joins:      %d\n", stats.FailedRequests)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Throughput:          %.2f joins/s\n", tps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	fmt.Println("\n----------------- STATUS DISTRIBUTION -----------------")
	for status, count := range stats.StatusCounts {
		fmt.Printf("HTTP %d: %d (%.1f%%)\n", status, count, float64(count)/float64(stats.TotalRequests)*100)
	}
}
