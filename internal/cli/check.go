package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"kontaktvault/internal/passx"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd-check [password]",
		Short: "Check a password against the policy and rate its strength",
		Long:  "Runs offline against the local policy. The password is not stored anywhere.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				var err error
				password, err = promptPassword("Password to check: ")
				if err != nil {
					return err
				}
			}

			st := passx.AnalyzeStrength(password)
			fmt.Printf("Strength: %s\n", strengthLine(st))
			if err := passx.Validate(password); err != nil {
				failf("Policy: %v", err)
			} else {
				successf("Policy: ok")
			}
			for _, f := range st.Feedback {
				notef("%s", f)
			}
			return nil
		},
	}
}
