package groq

import (
	"errors"
	"fmt"
)

const systemPrompt = "You are a VC intelligence analyst. Extract structured information from the provided company content. Return ONLY JSON."

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// EnrichmentResult is the structured profile extracted by the model. Field
// names are part of the API contract.
type EnrichmentResult struct {
	Summary        string   `json:"summary"`
	WhatTheyDo     []string `json:"whatTheyDo"`
	Keywords       []string `json:"keywords"`
	DerivedSignals []string `json:"derivedSignals"`
	Sources        []Source `json:"sources"`
}

type Source struct {
	URL       string `json:"url"`
	FetchedAt string `json:"fetchedAt"`
}

// validate rejects model output that parsed as JSON but does not carry the
// full result shape. Nothing is corrected or defaulted; a bad payload is an
// error, not a partial result.
func (r *EnrichmentResult) validate() error {
	if r.Summary == "" {
		return errors.New("missing field 'summary'")
	}
	if r.WhatTheyDo == nil {
		return errors.New("missing field 'whatTheyDo'")
	}
	if r.Keywords == nil {
		return errors.New("missing field 'keywords'")
	}
	if r.DerivedSignals == nil {
		return errors.New("missing field 'derivedSignals'")
	}
	if r.Sources == nil {
		return errors.New("missing field 'sources'")
	}
	return nil
}

// simulatedContent stands in for real website retrieval, which is out of
// scope: the block below is a fixed template, not fetched content.
func simulatedContent(name, website string) string {
	return fmt.Sprintf(`
    Website: %s
    Company Name: %s
    Home page: %s is a leading innovator in technology. We focus on cutting edge solutions for our clients.
    Careers: We are hiring engineers, product managers and sales representatives across the globe.
    About: Founded in 2021, our mission is to accelerate the transition to sustainable industrial processes.
    Blog: Recently posted about our new partnership with industry leaders and expansion into Asian markets.
  `, website, name, name)
}

func userPrompt(name, website, fetchedAt string) string {
	return fmt.Sprintf("Company: %s\nWebsite: %s\n\nContent:\n%s\n\nRequired Format:\n"+
		"{\n"+
		"  \"summary\": \"1-2 sentences\",\n"+
		"  \"whatTheyDo\": [\"point 1\", \"point 2\", ...],\n"+
		"  \"keywords\": [\"key 1\", \"key 2\", ...],\n"+
		"  \"derivedSignals\": [\"signal 1\", \"signal 2\", ...],\n"+
		"  \"sources\": [{\"url\": \"%s\", \"fetchedAt\": \"%s\"}]\n"+
		"}", name, website, simulatedContent(name, website), website, fetchedAt)
}
