package client

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	sheetv1 "github.com/KirkDiggler/rpg-sheet-store/internal/handlers/sheet/v1"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List characters held by the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, cleanup, err := createStoreClient()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := requestContext(cmd)
		defer cancel()

		resp, err := client.ListCharacters(ctx, &emptypb.Empty{})
		if err != nil {
			return errors.FromGRPCError(err)
		}

		if len(resp.GetValues()) == 0 {
			cmd.Println("No characters stored.")
			return nil
		}

		for _, value := range resp.GetValues() {
			char, err := sheetv1.FromStruct(value.GetStructValue())
			if err != nil {
				return err
			}
			cmd.Printf("%s\t%s\t%s %s\tlevel %d\n", char.ID, char.Name, char.Race, char.Class, char.Level)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one character record from the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := createStoreClient()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := requestContext(cmd)
		defer cancel()

		resp, err := client.GetCharacter(ctx, wrapperspb.String(args[0]))
		if err != nil {
			return errors.FromGRPCError(err)
		}

		char, err := sheetv1.FromStruct(resp)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(char, "", "  ")
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeInternal, "failed to encode character")
		}
		cmd.Println(string(data))
		return nil
	},
}

var dirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the server's storage location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, cleanup, err := createStoreClient()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := requestContext(cmd)
		defer cancel()

		resp, err := client.GetStorageDirectory(ctx, &emptypb.Empty{})
		if err != nil {
			return errors.FromGRPCError(err)
		}

		cmd.Println(resp.GetValue())
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a character through the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := createStoreClient()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := requestContext(cmd)
		defer cancel()

		if _, err := client.DeleteCharacter(ctx, wrapperspb.String(args[0])); err != nil {
			return errors.FromGRPCError(err)
		}

		cmd.Printf("deleted %s\n", args[0])
		return nil
	},
}
