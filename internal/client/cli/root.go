// Package cli implements authctl, a command-line client for the credential
// service.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/userauth/internal/client/apiclient"
	"github.com/spf13/cobra"
)

// getPassword is swapped in tests.
var getPassword = GetPassword

type options struct {
	server   string
	timeout  time.Duration
	username string
	password string
}

// NewRootCmd builds the authctl command tree writing results to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "authctl",
		Short:         "Client for the user auth service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.server, "server", "http://127.0.0.1:3000", "service base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")

	root.AddCommand(
		newHealthCmd(opts),
		newRegisterCmd(opts),
		newLoginCmd(opts),
		newVerifyCmd(opts),
	)
	return root
}

func (o *options) client() *apiclient.Client {
	return apiclient.New(o.server, o.timeout)
}

// credentials returns the password flag or prompts for it.
func (o *options) credentials(cmd *cobra.Command) (string, string, error) {
	if o.password != "" {
		return o.username, o.password, nil
	}
	pw, err := getPassword(cmd.ErrOrStderr())
	if err != nil {
		return "", "", err
	}
	return o.username, pw, nil
}

func addCredentialFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "user name")
	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "password (prompted when empty)")
	_ = cmd.MarkFlagRequired("username")
}

func newHealthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the service is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := opts.client().Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newRegisterCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, password, err := opts.credentials(cmd)
			if err != nil {
				return err
			}
			res, err := opts.client().Register(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	addCredentialFlags(cmd, opts)
	return cmd
}

func newLoginCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			username, password, err := opts.credentials(cmd)
			if err != nil {
				return err
			}
			token, err := opts.client().Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	addCredentialFlags(cmd, opts)
	return cmd
}

func newVerifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify TOKEN",
		Short: "Check a bearer token and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client().Verify(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ExitCode maps an error to a process exit status: 2 for unreachable
// server, 1 otherwise.
func ExitCode(err error) int {
	if errors.Is(err, apiclient.ErrUnavailable) {
		return 2
	}
	return 1
}
