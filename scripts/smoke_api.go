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
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout, LLM turns can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func dataField(body []byte) map[string]interface{} {
	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	if data, ok := parsed["data"].(map[string]interface{}); ok {
		return data
	}
	return nil
}

func main() {
	color.Cyan("🚀 Starting Vocab Practice API Smoke Test\n")

	// 1. Register a throwaway account
	email := fmt.Sprintf("smoke_%d@example.com", time.Now().Unix())
	color.Yellow("\n[AUTH] 1. Register %s", email)
	registerReq := map[string]interface{}{
		"username": fmt.Sprintf("smoke_%d", time.Now().Unix()),
		"email":    email,
		"password": "password123",
	}
	resp, body, err := sendRequest("POST", "/auth/v1/register", "", registerReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	// 2. Login
	color.Yellow("\n[AUTH] 2. Login")
	loginReq := map[string]interface{}{
		"email":    email,
		"password": "password123",
	}
	resp, body, err = sendRequest("POST", "/auth/v1/login", "", loginReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var token string
	if data := dataField(body); data != nil {
		if t, ok := data["token"].(string); ok {
			token = t
		}
	}
	if token == "" {
		color.Red("No token returned, aborting")
		os.Exit(1)
	}

	// 3. Add a few words
	color.Yellow("\n[WORD] 3. Create Words")
	words := []map[string]interface{}{
		{"word": "你好", "pinyin": "nǐ hǎo", "meaning": "hello"},
		{"word": "谢谢", "pinyin": "xiè xie", "meaning": "thank you"},
		{"word": "学习", "pinyin": "xué xí", "meaning": "to study"},
	}
	for _, w := range words {
		resp, _, err = sendRequest("POST", "/word/v1", token, w)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		color.Green("Created %v -> %s", w["word"], resp.Status)
	}

	// 4. Progress summary
	color.Yellow("\n[WORD] 4. Progress Summary")
	resp, body, err = sendRequest("GET", "/word/v1/progress", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(dataField(body))

	// 5. Start a practice session
	color.Yellow("\n[PRACTICE] 5. Start Session")
	resp, body, err = sendRequest("POST", "/practice/v1/start", token, map[string]interface{}{
		"word_count": 2,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var sessionID string
	if data := dataField(body); data != nil {
		if id, ok := data["session_id"].(string); ok {
			sessionID = id
		}
		fmt.Printf("Greeting: %v\n", data["greeting"])
	}
	if sessionID == "" {
		color.Red("No session ID returned, aborting")
		os.Exit(1)
	}
	fmt.Printf("Session ID: %s\n", sessionID)

	// 6. Send a practice sentence
	color.Yellow("\n[PRACTICE] 6. Send Attempt")
	resp, body, err = sendRequest("POST", "/practice/v1/"+sessionID+"/message", token, map[string]interface{}{
		"message": "我每天学习中文。",
	})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		if data := dataField(body); data != nil {
			fmt.Printf("Reply: %v\n", data["reply"])
			if fb, ok := data["feedback"].(map[string]interface{}); ok {
				fmt.Printf("Scores: grammar=%v usage=%v naturalness=%v\n",
					fb["grammar_score"], fb["usage_score"], fb["naturalness_score"])
			}
		}
	}

	// 7. Advance to the next word
	color.Yellow("\n[PRACTICE] 7. Advance Word")
	resp, body, err = sendRequest("POST", "/practice/v1/"+sessionID+"/next", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		prettyPrint(dataField(body))
	}

	// 8. Complete the session
	color.Yellow("\n[PRACTICE] 8. Complete Session")
	resp, body, err = sendRequest("POST", "/practice/v1/"+sessionID+"/complete", token, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		if data := dataField(body); data != nil {
			fmt.Printf("Summary: %v\n", data["summary_text"])
		}
	}

	color.Cyan("\n✅ Smoke Test Complete")
}
