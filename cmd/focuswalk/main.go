// Command focuswalk prints focus traversal results for a scene file without
// starting the terminal UI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"focusnav/internal/config"
	"focusnav/internal/focus"
	"focusnav/internal/jsonutil"
	"focusnav/internal/scene"

	"github.com/spf13/cobra"
)

var errNoScene = errors.New("no scene: pass --scene or set scene in focusnav.yaml")

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "focuswalk: %v\n", err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs after config is resolved.
type app struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger
	tree       *scene.Tree
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "focuswalk",
		Short:         "Print focus traversal results for a scene file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file")
	root.PersistentFlags().String("scene", "", "scene file (.yaml, .yml or .json)")
	root.AddCommand(newOrderCmd(a), newStepCmd(a))
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd, a.configPath)
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if cfg.Scene == "" {
		return errNoScene
	}
	tree, err := scene.Load(cfg.Scene)
	if err != nil {
		return err
	}
	a.tree = tree
	a.logger.Debug("scene loaded", "path", cfg.Scene, "nodes", tree.Len())
	return nil
}

func newOrderCmd(a *app) *cobra.Command {
	var reverse, asJSON bool
	cmd := &cobra.Command{
		Use:   "order",
		Short: "List eligible nodes in tab (or shift+tab) order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := a.tree.RootNode()
			nodes := focus.Order(root)
			if reverse {
				nodes = backwardOrder(root, nodes)
			}
			return writeNames(cmd.OutOrStdout(), names(nodes), asJSON)
		},
	}
	cmd.Flags().BoolVar(&reverse, "reverse", false, "shift+tab order, starting from the last node")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON array instead of one name per line")
	return cmd
}

func newStepCmd(a *app) *cobra.Command {
	var from string
	var reverse bool
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Print the node that receives focus after one tab (or shift+tab)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var owner focus.Node
			if from != "" {
				id, ok := a.tree.Lookup(from)
				if !ok {
					return fmt.Errorf("--from %q: %w", from, scene.ErrUnknownNode)
				}
				owner = a.tree.Node(id)
			}
			m := focus.NewManager()
			m.SetCurrentFocusOwner(owner)
			var next focus.Node
			if reverse {
				next = m.Previous(a.tree.RootNode(), m.CurrentFocusOwner())
			} else {
				next = m.Next(a.tree.RootNode(), m.CurrentFocusOwner())
			}
			a.logger.Debug("step", "from", from, "reverse", reverse, "to", name(next))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), name(next))
			return err
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "current focus owner (empty: nothing focused)")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "shift+tab instead of tab")
	return cmd
}

// backwardOrder walks shift+tab from the last forward node. The root shows
// up at the end when it is itself eligible, including when it is the only
// eligible node and there is no forward node to start from.
func backwardOrder(root focus.Node, forward []focus.Node) []focus.Node {
	if len(forward) == 0 {
		if focus.Eligible(root) {
			return []focus.Node{root}
		}
		return nil
	}
	var out []focus.Node
	for n := forward[len(forward)-1]; n != nil; n = focus.PreviousFocusable(root, n) {
		out = append(out, n)
	}
	return out
}

func name(n focus.Node) string {
	if h, ok := scene.HandleOf(n); ok {
		return h.Name()
	}
	return "<none>"
}

func names(nodes []focus.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = name(n)
	}
	return out
}

func writeNames(w io.Writer, list []string, asJSON bool) error {
	if asJSON {
		b, err := jsonutil.MarshalIndent(list, "encode order")
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	for _, n := range list {
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}
