// Package client provides commands that call a running sheet-store server
package client

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	sheetv1 "github.com/KirkDiggler/rpg-sheet-store/internal/handlers/sheet/v1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running sheet-store server",
	Long:  `Client commands make real gRPC requests to a sheet-store server.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	ClientCmd.AddCommand(listCmd)
	ClientCmd.AddCommand(showCmd)
	ClientCmd.AddCommand(dirCmd)
	ClientCmd.AddCommand(deleteCmd)
}

// createStoreClient dials the server; call cleanup when done
func createStoreClient() (sheetv1.CharacterStoreClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to connect to server")
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return sheetv1.NewCharacterStoreClient(conn), cleanup, nil
}

// requestContext bounds one call by the --timeout flag
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}
