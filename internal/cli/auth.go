package cli

import (
	"fmt"

	"github.com/dtg01100/clickwheel/internal/auth"
	apperrors "github.com/dtg01100/clickwheel/internal/errors"
	"github.com/dtg01100/clickwheel/internal/models"
	"github.com/spf13/cobra"
)

var serviceArgs = []string{string(models.ServiceApple), string(models.ServiceSpotify)}

var signinCmd = &cobra.Command{
	Use:       "signin <apple|spotify>",
	Short:     "Sign in to a streaming service",
	Long:      `Sign in to a streaming service and make it the current one.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: serviceArgs,
	RunE:      runSignin,
}

var signoutCmd = &cobra.Command{
	Use:   "signout <apple|spotify>",
	Short: "Sign out of a streaming service",
	Long: `Sign out of a streaming service. When it was the current service, the
other service takes over if it is still signed in.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: serviceArgs,
	RunE:      runSignout,
}

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the current streaming service",
}

var serviceUseCmd = &cobra.Command{
	Use:       "use <apple|spotify>",
	Short:     "Switch to a signed-in streaming service",
	Args:      cobra.ExactArgs(1),
	ValidArgs: serviceArgs,
	RunE:      runServiceUse,
}

func init() {
	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(signoutCmd)
	rootCmd.AddCommand(serviceCmd)
	serviceCmd.AddCommand(serviceUseCmd)
}

// withProvider runs fn with the provider for the named service and saves
// the result.
func withProvider(name string, fn func(*auth.Provider)) (models.Snapshot, error) {
	service, err := models.ParseService(name)
	if err != nil {
		return models.Snapshot{}, err
	}

	cfg, store, err := openStore()
	if err != nil {
		return models.Snapshot{}, err
	}

	fn(auth.NewProvider(service, store))
	if err := commit(cfg, store); err != nil {
		return models.Snapshot{}, err
	}
	return store.Snapshot(), nil
}

func runSignin(cmd *cobra.Command, args []string) error {
	snap, err := withProvider(args[0], (*auth.Provider).SignIn)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd.OutOrStdout(), snap)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in to %s.\n", snap.Service.DisplayName())
	return nil
}

func runSignout(cmd *cobra.Command, args []string) error {
	snap, err := withProvider(args[0], (*auth.Provider).SignOut)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd.OutOrStdout(), snap)
	}
	service, _ := models.ParseService(args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "Signed out of %s. Current service: %s.\n",
		service.DisplayName(), snap.Service.DisplayName())
	return nil
}

func runServiceUse(cmd *cobra.Command, args []string) error {
	service, err := models.ParseService(args[0])
	if err != nil {
		return err
	}

	cfg, store, err := openStore()
	if err != nil {
		return err
	}

	if !store.Snapshot().Authorized(service) {
		return apperrors.NewNotAuthorizedError(service.DisplayName())
	}

	store.SetService(service)
	if err := commit(cfg, store); err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd.OutOrStdout(), store.Snapshot())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Current service set to %s.\n", service.DisplayName())
	return nil
}
