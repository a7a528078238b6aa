package langchaingo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashgraph-online/gravatar-sdk-go/pkg/gravatar"
	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/tools"
)

// ProfileLookupTool is a langchaingo compatible Tool that lets an agent look
// up the public Gravatar profile behind an email address.
type ProfileLookupTool struct {
	client    *gravatar.Client
	Callbacks callbacks.Handler
}

var _ tools.Tool = &ProfileLookupTool{}

// NewProfileLookupTool creates a new langchaingo tool for profile lookups.
// If client is nil, a client with default options is used.
func NewProfileLookupTool(client *gravatar.Client) (*ProfileLookupTool, error) {
	if client == nil {
		defaultClient, err := gravatar.NewClient(gravatar.Config{})
		if err != nil {
			return nil, err
		}
		client = defaultClient
	}
	return &ProfileLookupTool{
		client: client,
	}, nil
}

func (t *ProfileLookupTool) Name() string {
	return "Gravatar_Profile_Lookup"
}

func (t *ProfileLookupTool) Description() string {
	return `Looks up the public Gravatar profile for an email address and returns it as JSON.
Use this tool when you need a person's display name, avatar URL, homepage or linked accounts given their email.`
}

// Call fetches the JSON profile for the email in input. Lookup failures are
// reported to the agent as text rather than as an error.
func (t *ProfileLookupTool) Call(ctx context.Context, input string) (string, error) {
	if t.Callbacks != nil {
		t.Callbacks.HandleToolStart(ctx, input)
	}

	email := strings.TrimSpace(input)
	profile, err := t.client.FetchProfile(ctx, email, gravatar.FormatJSON)
	if err != nil {
		if t.Callbacks != nil {
			t.Callbacks.HandleToolError(ctx, err)
		}
		if gravatar.IsNotFound(err) {
			return fmt.Sprintf("No Gravatar profile exists for %s", email), nil
		}
		return fmt.Sprintf("Failed to look up Gravatar profile: %v", err), nil
	}

	jsonData, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode profile to JSON: %w", err)
	}

	output := string(jsonData)

	if t.Callbacks != nil {
		t.Callbacks.HandleToolEnd(ctx, output)
	}

	return output, nil
}
