package mistral

import (
	"fmt"

	"github.com/ndewijer/Stock-AI-Report/internal/model"
)

// BuildMessages returns the two-message prompt for a report: a system
// instruction bounded to the requested date range, and a user message
// carrying the price history and instrument metadata.
func BuildMessages(req model.ReportRequest) []ChatMessage {
	return []ChatMessage{
		{
			Role: RoleSystem,
			Content: fmt.Sprintf(
				"You are a trading guru. Given data on share prices from %s to %s, "+
					"write a report of no more than 150 words describing the stock's performance "+
					"and recommending whether to buy, hold or sell.",
				req.StartDate, req.EndDate,
			),
		},
		{
			Role: RoleUser,
			Content: fmt.Sprintf(
				"data: %s, ticker code: %s, ticker: %s, currency: %s",
				req.Data, req.Code, req.Ticker, req.Currency,
			),
		},
	}
}
