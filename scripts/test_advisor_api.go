package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // LLM calls can be slow, no timeout
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func chat(userId, message string) {
	resp, body, err := sendRequest("POST", "/advisor/v1/chat", map[string]interface{}{
		"user_id": userId,
		"message": message,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var chatResp map[string]interface{}
	json.Unmarshal(body, &chatResp)
	prettyPrint(chatResp)
}

func main() {
	color.Cyan("🚀 Starting Advisor API Smoke Test\n")

	// 1. List teachings so we know the corpus is seeded
	color.Yellow("\n1. List Teachings")
	resp, body, err := sendRequest("GET", "/teaching/v1?limit=5", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var listResp map[string]interface{}
	json.Unmarshal(body, &listResp)
	prettyPrint(listResp)

	// 2. Fresh topic search
	color.Yellow("\n2. Search: 'recommend me 2 sermons on healing'")
	chat("smoke-test-user", "recommend me 2 sermons on healing")

	// 3. Continuation
	color.Yellow("\n3. Continuation: 'more'")
	chat("smoke-test-user", "more")

	// 4. Identical search again, should be a cache hit with the same list
	color.Yellow("\n4. Repeat search (cache hit expected)")
	chat("smoke-test-user", "recommend me 2 sermons on healing")

	// 5. Empty topic triggers clarification
	color.Yellow("\n5. Vague request: 'recommend me some sermons'")
	chat("smoke-test-user", "recommend me some sermons")

	// 6. "more" for a user with no session
	color.Yellow("\n6. 'more' without a session")
	chat("fresh-user", "more")

	color.Cyan("\n✨ Done")
}
