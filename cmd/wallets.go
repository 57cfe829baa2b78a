package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jazzmini/jsquiz/internal/wallet"
)

var walletsCmd = &cobra.Command{
	Use:   "wallets",
	Short: "List reachable wallets and the connected account",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openServices(cmd, false)
		if err != nil {
			return err
		}
		defer cleanup()

		if svc.Config.LocalOnly() {
			fmt.Println("No wallet endpoints configured (set JSQUIZ_WALLET_ENDPOINTS).")
			return nil
		}

		conn := wallet.NewConnection(svc.Logger)
		conn.Refresh(cmd.Context(), svc.Detector)

		providers := conn.Providers()
		if len(providers) == 0 {
			fmt.Println(color.YellowString("No wallet found"), "at", svc.Config.Wallet.Endpoints)
			return nil
		}
		for _, label := range providers {
			fmt.Println(" ", color.GreenString("●"), label)
		}

		if addr := conn.Address(); addr != "" {
			fmt.Printf("\nConnected account: %s\n", color.CyanString(addr))
		} else {
			fmt.Println("\nNo account connected. Approve jsquiz in your wallet when you submit.")
		}
		return nil
	},
}
