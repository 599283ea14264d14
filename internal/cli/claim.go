package cli

import (
	"context"

	"github.com/cg3io/prior/internal/args"
	"github.com/cg3io/prior/internal/knowledge"
	"github.com/spf13/cobra"
)

func newClaimCmd(a *app) *cobra.Command {
	return newAPICommand("claim <email>", "Start claiming your agent", func(ctx context.Context, p args.Parsed) error {
		email, err := knowledge.ClaimEmail(p)
		if err != nil {
			return err
		}
		key, err := a.auth.EnsureKey(ctx)
		if err != nil {
			return err
		}
		resp, err := a.client.Claim(ctx, key, email)
		if err != nil {
			return err
		}
		return a.render(resp, knowledge.AdviseClaim(resp))
	})
}

func newVerifyCmd(a *app) *cobra.Command {
	return newAPICommand("verify <code>", "Complete claim with 6-digit code", func(ctx context.Context, p args.Parsed) error {
		code, err := knowledge.VerifyCode(p)
		if err != nil {
			return err
		}
		key, err := a.auth.EnsureKey(ctx)
		if err != nil {
			return err
		}
		resp, err := a.client.Verify(ctx, key, code)
		if err != nil {
			return err
		}
		return a.render(resp, knowledge.AdviseVerify(resp))
	})
}
