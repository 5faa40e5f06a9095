package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ocictl",
		Long:  `All software has versions. This is ocictl's.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ocictl version %s\n", rootCmd.Version)
		},
	}
}
