package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

var baseURL = "http://localhost:3000/api/chat/v1"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func sendRequest(method, path string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func ask(sessionID, question string) {
	resp, body, err := sendRequest("POST", "/ask", map[string]interface{}{
		"session_id": sessionID,
		"question":   question,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		return
	}
	color.Green("Status: %s", resp.Status)

	var askResp map[string]interface{}
	_ = json.Unmarshal(body, &askResp)
	data, ok := askResp["data"].(map[string]interface{})
	if !ok {
		prettyPrint(askResp)
		return
	}
	fmt.Printf("Query:  %s\n", data["query"])
	fmt.Printf("Answer: %s\n", data["answer"])
	if sources, ok := data["sources"].([]interface{}); ok {
		fmt.Printf("Sources: %d\n", len(sources))
	}
}

func main() {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		baseURL = v
	}
	color.Cyan("Starting chat API smoke test against %s\n", baseURL)

	color.Yellow("\n1. Create session")
	resp, body, err := sendRequest("POST", "/sessions", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var createResp map[string]interface{}
	_ = json.Unmarshal(body, &createResp)
	var sessionID string
	if data, ok := createResp["data"].(map[string]interface{}); ok {
		sessionID, _ = data["session_id"].(string)
	}
	if sessionID == "" {
		color.Red("No session id in response")
		prettyPrint(createResp)
		os.Exit(1)
	}
	fmt.Printf("Session ID: %s\n", sessionID)

	color.Yellow("\n2. Ask an opening question")
	ask(sessionID, "How do I register for an account?")

	color.Yellow("\n3. Ask a follow-up that depends on history")
	ask(sessionID, "What if I forget the password for it?")

	color.Yellow("\n4. Read history")
	resp, body, err = sendRequest("GET", "/sessions/"+sessionID+"/history", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var historyResp map[string]interface{}
	_ = json.Unmarshal(body, &historyResp)
	prettyPrint(historyResp)

	color.Yellow("\n5. Validation: empty question")
	resp, body, err = sendRequest("POST", "/ask", map[string]interface{}{"session_id": sessionID})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode != http.StatusBadRequest {
		color.Red("Expected 400, got %s", resp.Status)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	fmt.Println(string(body))

	color.Cyan("\nDone")
}
