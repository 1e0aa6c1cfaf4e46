package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fintrack/internal/domain"
)

func decryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <in.enc> [out]",
		Short: "Decrypt one sealed artifact to a plaintext file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			out := strings.TrimSuffix(in, domain.SealedSuffix)
			if out == in {
				out = in + ".dec"
			}
			if len(args) == 2 {
				out = args[1]
			}
			if err := appCtx.Artifacts.DecryptArtifact(in, out); err != nil {
				return err
			}
			fmt.Println(color.GreenString("Decrypted %s -> %s", in, out))
			return nil
		},
	}
}
