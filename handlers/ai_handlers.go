package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"app/middleware"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// HandleGetRestockAdvice narrates the computed bulk order plan through Gemini
// so pharmacists get a human-readable recommendation on top of the numbers.
// The plan itself comes from the deterministic engine; the model only adds
// commentary, never quantities.
// GET /api/v1/pharmacy/bulk-order/advice?monthsAhead=N
func (h *ForecastHandler) HandleGetRestockAdvice(c *fiber.Ctx) error {
	claims, err := middleware.ExtractClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	monthsAhead, err := h.parseMonthsAhead(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	plan, err := h.bulkOrderPlan(c.Context(), claims.BranchID, monthsAhead)
	if err != nil {
		log.Printf("Error computing plan for advice, branch %s: %v", claims.BranchID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to compute bulk order plan"})
	}

	if len(plan.Items) == 0 {
		return c.JSON(fiber.Map{"success": true, "data": models.RestockAdvice{
			Summary: "No restocking needed: every drug is above its reorder level and covers the forecast horizon.",
		}})
	}

	ctx := c.Context()
	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to connect to AI service"})
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	resp, err := model.GenerateContent(ctx, genai.Text(constructAdvicePrompt(plan)))
	if err != nil {
		log.Printf("Error from Gemini API: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to generate advice from AI"})
	}

	advice, err := parseAdviceResponse(resp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "data": advice})
}

// constructAdvicePrompt creates a detailed prompt describing the plan.
func constructAdvicePrompt(plan models.BulkOrderPlan) string {
	lines := ""
	for _, item := range plan.Items {
		lines += fmt.Sprintf("- %s: order %d units (current stock %d, cost %s, priority %s)\n",
			item.DrugName, item.SuggestedQuantity, item.CurrentStock, item.TotalCost.StringFixed(2), item.Priority)
	}

	jsonFormat := `{"summary":"string","urgent_actions":["string",...],"cautions":["string",...]}`

	return fmt.Sprintf(`
        You are an experienced hospital pharmacy procurement advisor. Review the purchase
        order plan below and write a short recommendation for the branch pharmacist.

        **Context:**
        - Date: %s
        - Total estimated cost: %s
        - Line items:
        %s

        **Required Output:**
        You must provide a single, minified JSON object with the following exact structure.
        Do not include any markdown formatting, backticks, or explanatory text before or
        after the JSON object. Do not change any quantity.

        %s
    `, time.Now().Format("2006-01-02"), plan.TotalEstimatedCost.StringFixed(2), lines, jsonFormat)
}

func extractJSON(rawString string) string {
	start := strings.Index(rawString, "{")
	end := strings.LastIndex(rawString, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return rawString[start : end+1]
}

// parseAdviceResponse parses the JSON from Gemini into a structured response.
func parseAdviceResponse(resp *genai.GenerateContentResponse) (*models.RestockAdvice, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content received from AI")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}

	raw := extractJSON(text)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object found in AI response")
	}

	var advice models.RestockAdvice
	if err := json.Unmarshal([]byte(raw), &advice); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	return &advice, nil
}
