package cli

import (
	"context"

	"github.com/cg3io/prior/internal/args"
	"github.com/cg3io/prior/internal/knowledge"
	"github.com/spf13/cobra"
)

func newFeedbackCmd(a *app) *cobra.Command {
	return newAPICommand("feedback <entry-id> <outcome>", "Give feedback on a search result", func(ctx context.Context, p args.Parsed) error {
		req, err := knowledge.BuildFeedback(p)
		if err != nil {
			return err
		}
		key, err := a.auth.EnsureKey(ctx)
		if err != nil {
			return err
		}
		resp, err := a.client.Feedback(ctx, key, req.ID, req)
		if err != nil {
			return err
		}
		return a.render(resp, nil)
	})
}
