// Package langchaingo provides Gravatar tools for the tmc/langchaingo AI agent
// framework.
//
// # Available Tools
//
//   - ProfileLookupTool: Fetches the public profile behind an email address
//     and returns it as JSON.
//
// # Usage
//
//	lookupTool, err := langchaingo.NewProfileLookupTool(nil)
//	if err != nil {
//		return err
//	}
//	agent := agents.NewOneShotAgent(llm, []tools.Tool{lookupTool})
//
// Langchaingo: https://github.com/tmc/langchaingo
package langchaingo
