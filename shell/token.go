package shell

import (
	"context"

	"github.com/hadoopsh/hadoopsh/client"
)

// tokenCommand fetches an SSO token when a token url is configured and
// shows its claims. The token is kept on the endpoint.
func tokenCommand(e *client.Endpoint) Command {
	return Command{Name: "token", Help: "Fetch and show the SSO token", Run: func(ctx context.Context, _ Args) (interface{}, error) {
		if e.TokenURL != "" {
			token, err := client.FetchToken(ctx, e.TokenURL, e.User, e.Password)
			if err != nil {
				return nil, err
			}
			e.Token = token
		}
		if e.Token == "" {
			return "No token url configured", nil
		}
		return client.InspectToken(e.Token)
	}}
}
