package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Smoke test against a running server: signup, signin, profile, ask, signout.
func main() {
	baseURL := flag.String("base-url", "http://localhost:5000/api", "API base URL")
	query := flag.String("query", "How long does security take at JFK Terminal 4?", "question sent to POST /api")
	flag.Parse()

	if err := run(*baseURL, *query); err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}
	color.Green("\n✅ Smoke test passed")
}

func run(baseURL, query string) error {
	client := &http.Client{Timeout: 90 * time.Second}
	username := "smoke_" + uuid.NewString()[:8]

	color.Cyan("🚀 Airport assistant smoke test against %s\n", baseURL)

	color.Yellow("\n1. Signup %s", username)
	if _, err := expect(client, "POST", baseURL+"/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "smoke-password",
	}, http.StatusCreated); err != nil {
		return err
	}

	color.Yellow("\n2. Signin")
	body, err := expect(client, "POST", baseURL+"/signin", "", map[string]string{
		"username": username,
		"password": "smoke-password",
	}, http.StatusOK)
	if err != nil {
		return err
	}
	token, _ := body["token"].(string)
	if token == "" {
		return fmt.Errorf("signin returned no token")
	}

	color.Yellow("\n3. Profile")
	if _, err := expect(client, "GET", baseURL+"/profile", token, nil, http.StatusOK); err != nil {
		return err
	}

	color.Yellow("\n4. Ask")
	// 500 is the generic fallback and still carries a reply
	if _, err := expect(client, "POST", baseURL, "", map[string]string{"query": query}, http.StatusOK, http.StatusInternalServerError); err != nil {
		return err
	}

	color.Yellow("\n5. Signout")
	if _, err := expect(client, "POST", baseURL+"/signout", token, nil, http.StatusOK); err != nil {
		return err
	}

	color.Yellow("\n6. Profile after signout")
	_, err = expect(client, "GET", baseURL+"/profile", token, nil, http.StatusUnauthorized)
	return err
}

func expect(client *http.Client, method, url, token string, payload interface{}, statuses ...int) (map[string]interface{}, error) {
	var bodyReader io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var body map[string]interface{}
	_ = json.Unmarshal(raw, &body)
	prettyPrint(body)

	for _, s := range statuses {
		if resp.StatusCode == s {
			color.Green("Status: %s", resp.Status)
			return body, nil
		}
	}
	return body, fmt.Errorf("%s %s: got status %d, want %v", method, url, resp.StatusCode, statuses)
}

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}
