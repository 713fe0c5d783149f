package ai

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Assistant holds the Gemini client and the read-only database connection.
type Assistant struct {
	Client *genai.Client
	DB     *sql.DB
}

// NewAssistant initializes the Gemini client.
func NewAssistant(apiKey string, dbReadOnly *sql.DB) (*Assistant, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Assistant{Client: client, DB: dbReadOnly}, nil
}

// GenerateResponse runs one chat turn. The model can answer from the live
// database through the read-only SQL tool.
func (s *Assistant) GenerateResponse(ctx context.Context, userMessage string, userType string) (string, error) {
	model := s.Client.GenerativeModel("gemini-1.5-flash")

	sqlTool := &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        "run_readonly_sql",
				Description: "Executes a READ-ONLY SQL query (SELECT only) to answer questions.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"query": {
							Type:        genai.TypeString,
							Description: "The MySQL SELECT query to execute.",
						},
					},
					Required: []string{"query"},
				},
			},
		},
	}
	model.Tools = []*genai.Tool{sqlTool}

	schemaContext := s.getSchemaDefinition()
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf(`
			You are the GroceryLink Assistant. You are talking to a %s.
			Access: MySQL database (run_readonly_sql).
			Schema: %s
			Rules: SELECT only. Be concise. Map typos (e.g. "frute") to correct tables.
		`, userType, schemaContext))},
	}

	cs := model.StartChat()
	res, err := cs.SendMessage(ctx, genai.Text(userMessage))
	if err != nil {
		return "", fmt.Errorf("error sending message: %w", err)
	}

	// Loop for Function Calls
	for {
		if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
			return "No response.", nil
		}
		part := res.Candidates[0].Content.Parts[0]

		funcCall, ok := part.(genai.FunctionCall)
		if !ok {
			return fmt.Sprintf("%v", part), nil
		}

		if funcCall.Name != "run_readonly_sql" {
			return "", fmt.Errorf("unknown function: %s", funcCall.Name)
		}

		query, ok := funcCall.Args["query"].(string)
		if !ok {
			return "", fmt.Errorf("invalid query argument")
		}
		log.Printf("Assistant running SQL: %s", query)

		sqlResult, sqlErr := s.runReadOnlyQuery(query)
		if sqlErr != nil {
			sqlResult = fmt.Sprintf("SQL Error: %v", sqlErr)
		}

		res, err = cs.SendMessage(ctx, genai.FunctionResponse{
			Name:     "run_readonly_sql",
			Response: map[string]interface{}{"result": sqlResult},
		})
		if err != nil {
			return "", fmt.Errorf("tool response error: %w", err)
		}
	}
}

func (s *Assistant) runReadOnlyQuery(query string) (string, error) {
	normalized := strings.ToUpper(query)
	if strings.Contains(normalized, "UPDATE") || strings.Contains(normalized, "DELETE") || strings.Contains(normalized, "DROP") || strings.Contains(normalized, "INSERT") {
		return "", fmt.Errorf("security violation: modify operations are not allowed")
	}
	rows, err := s.DB.Query(query)
	if err != nil {
		return "", err
	}
	defer rows.Close()
	columns, _ := rows.Columns()
	count := len(columns)
	tableData := []map[string]interface{}{}
	for rows.Next() {
		values := make([]interface{}, count)
		valuePtrs := make([]interface{}, count)
		for i := range columns {
			valuePtrs[i] = &values[i]
		}
		rows.Scan(valuePtrs...)
		entry := make(map[string]interface{})
		for i, col := range columns {
			var v interface{}
			val := values[i]
			b, ok := val.([]byte)
			if ok {
				v = string(b)
			} else {
				v = val
			}
			entry[col] = v
		}
		tableData = append(tableData, entry)
	}
	jsonData, err := json.Marshal(tableData)
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (s *Assistant) getSchemaDefinition() string {
	return `
	- users (id, email, name, user_type [consumer, provider], phone_number, provider, street, city, zip_code)
	- items (id, provider_id, name, category, brand, price, description, available_stock, general_item_id, image_url)
	- general_items (id, name, slug, category, brands [JSON array], default_image_url, description)
	- orders (id, user_id, provider_id, total_price, status [pending, confirmed, shipped, delivered, cancelled], street, city, zip_code, scheduled_delivery_time, created_at)
	- order_items (order_id, item_id, name, quantity, price)
	- lists (id, user_id, name, items [JSON array of item ids], frequency, next_order_date, auto_approve_delivery)
	`
}
