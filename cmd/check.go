package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brk3/streaks/internal/schema"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the persisted habit data",
	Long: `The "check" command reads the stored habit collection without loading it
and reports every problem found, so a corrupt slot can be repaired by hand.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, ok, err := readSlot()
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("No habit data stored yet")
			return nil
		}

		err = schema.Validate(data)
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			for _, v := range ve.Violations {
				cmd.Println(v.String())
			}
			return fmt.Errorf("%d problem(s) found", len(ve.Violations))
		}
		if err != nil {
			return err
		}
		cmd.Println("OK")
		return nil
	},
}

// readSlot returns the raw persisted collection.
func readSlot() (data []byte, ok bool, err error) {
	if remote {
		return nil, false, errors.New("this command reads the local store and cannot be used with --remote")
	}
	kv, err := openKV(cfg.Storage)
	if err != nil {
		return nil, false, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	defer kv.Close()
	return kv.Get(cfg.Storage.Key)
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
