// Package llm holds the provider-independent parts of the language-model
// layer: the error taxonomy and the prompt texts shared by the OpenAI and
// Claude clients.
package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrIntentExtraction marks a malformed or missing structured response
// during intent extraction. A model misfire is a capability failure, not a
// transient one, so it is never retried.
var ErrIntentExtraction = errors.New("intent extraction failed")

// ErrAnalysis marks a failed or empty analysis completion.
var ErrAnalysis = errors.New("transcript analysis failed")

// ExtractToolName is the single callable tool the extraction prompt
// exposes to the model.
const ExtractToolName = "extract_info"

// ExtractToolDescription documents the tool for the model.
const ExtractToolDescription = "Extract the year and ticker/company name from the user input"

// ExtractionSystemPrompt directs the model to pull a (year, company)
// pair out of free text, defaulting the year to the current one.
func ExtractionSystemPrompt(now time.Time) string {
	year := now.Year()
	return fmt.Sprintf(`As an experienced investment analyst, extract the ticker of the company and the year mentioned from the input. If a company name is mentioned, use your knowledge as an analyst to output its ticker. Return the latest year, which is %d, if no specific time frame is given. For example, for 'latest microsoft earnings call' the expected output is {"ticker_or_company":"MSFT","year":%d}.`, year, year)
}

// AnalysisSystemPrompt encodes the analytical rubric for transcript
// summaries. Config may override it; this is the default.
const AnalysisSystemPrompt = `You are an experienced investment analyst with years of experience in analyzing earnings call transcripts. Your task is to:
1. Extract the speakers and their positions from the earnings call transcript.
2. Summarize the key points discussed in the call.
3. Provide an opinion on the prospects for the company based on the call.
4. Be aware of and adjust for the inherent positive bias often present in these transcripts.
5. Highlight any potential red flags or areas of concern, even if they're subtly mentioned.
6. Provide a balanced view, considering both positive and negative aspects discussed.
7. Summarize the questions asked.

Your analysis should be insightful, critical, and unbiased. Don't hesitate to point out inconsistencies or vague statements in the transcript.`

// AnalysisUserPrompt wraps the transcript content for the completion call.
func AnalysisUserPrompt(content string) string {
	return "Please analyze this earnings call transcript and provide your insights:\n\n" + content
}
