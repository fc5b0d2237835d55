package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:8080"
	rps        = 10
	duration   = 1 * time.Minute
)

type CreateOrganizationRequest struct {
	Name string `json:"name"`
}

type OrganizationResponse struct {
	ID string `json:"id"`
}

type CreateIntegrationRequest struct {
	OrganizationID string `json:"organization_id"`
	Provider       string `json:"provider"`
	DisplayName    string `json:"display_name"`
}

type IntegrationResponse struct {
	ID string `json:"id"`
}

var (
	organizations []string
	integrations  []string
	httpc         = &http.Client{Timeout: 10 * time.Second}
)

func postJSON(url string, body any, out any) (int, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpc.Do(req)
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

// Seed
func seedData() error {
	log.Println("Seeding: creating organizations and integrations...")

	for i := 1; i <= 20; i++ {
		var org OrganizationResponse
		status, err := postJSON(targetHost+"/organizations", CreateOrganizationRequest{
			Name: fmt.Sprintf("load-org-%02d", i),
		}, &org)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN organizations returned %d\n", status)
			continue
		}
		organizations = append(organizations, org.ID)

		var integration IntegrationResponse
		status, err = postJSON(targetHost+"/integrations", CreateIntegrationRequest{
			OrganizationID: org.ID,
			Provider:       "google",
			DisplayName:    fmt.Sprintf("Google Workspace %02d", i),
		}, &integration)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN integrations returned %d\n", status)
			continue
		}
		integrations = append(integrations, integration.ID)

		time.Sleep(20 * time.Millisecond)
	}

	log.Printf("Seed completed: organizations=%d integrations=%d\n", len(organizations), len(integrations))
	return nil
}

// Targeter
// Запуск синхронизации в профиль не входит: без живых учетных данных
// Google Workspace он дает только 502.
func makeTargeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		r := rand.Float64()

		// 50% GET employees организации
		if r < 0.50 {
			org := organizations[rand.Intn(len(organizations))]
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/organizations/%s/employees?limit=%d", targetHost, org, 50+rand.Intn(100))
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 35% GET интеграции
		if r < 0.85 {
			integration := integrations[rand.Intn(len(integrations))]
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/integrations/%s", targetHost, integration)
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 10% POST organizations
		if r < 0.95 {
			body, _ := json.Marshal(CreateOrganizationRequest{
				Name: fmt.Sprintf("loadorg-%d", time.Now().UnixNano()),
			})
			t.Method = http.MethodPost
			t.URL = targetHost + "/organizations"
			t.Body = body
			t.Header = map[string][]string{"Content-Type": {"application/json"}}
			return nil
		}

		// 5% GET health
		t.Method = http.MethodGet
		t.URL = targetHost + "/health"
		t.Body = nil
		t.Header = map[string][]string{"Accept": {"application/json"}}
		return nil
	}
}

// Attack
func runAttack() {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	if err := seedData(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	if len(organizations) == 0 || len(integrations) == 0 {
		log.Fatal("Seed produced no targets")
	}

	runAttack()
}
