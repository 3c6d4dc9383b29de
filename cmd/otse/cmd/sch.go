package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchEdit/pkg/kicad/schematic"
	"github.com/OpenTraceLab/OpenTraceSchEdit/pkg/kicad/sexp"
)

var schCmd = &cobra.Command{
	Use:   "sch",
	Short: "KiCad schematic file operations",
	Long:  `Commands for working with KiCad schematic files (.kicad_sch)`,
}

var schInfoCmd = &cobra.Command{
	Use:   "info <schematic_file> [component]",
	Short: "Show schematic information",
	Long: `Display information about a KiCad schematic file.

Without component argument: shows schematic summary
With component argument: shows details for that specific component`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSchInfo,
}

var (
	setProps   []string
	setHide    []string
	setShow    []string
	setRemove  []string
	setOutFile string
)

var schSetCmd = &cobra.Command{
	Use:   "set <schematic_file> <reference>",
	Short: "Modify component properties surgically",
	Long: `Change, add, hide, show, or remove properties of one component.
Only the affected tokens are rewritten; the rest of the file is untouched.

Examples:
  otse sch set board.kicad_sch R1 --prop Value=4k7
  otse sch set board.kicad_sch C3 --prop Voltage=16V --hide Voltage
  otse sch set board.kicad_sch U2 --remove Datasheet`,
	Args: cobra.ExactArgs(2),
	RunE: runSchSet,
}

var schRenameNetCmd = &cobra.Command{
	Use:   "rename-net <schematic_file> <old_name> <new_name>",
	Short: "Rename all matching net labels",
	Long: `Rename every label, global_label, and hierarchical_label whose text
equals old_name. Only the name tokens change.`,
	Args: cobra.ExactArgs(3),
	RunE: runSchRenameNet,
}

var (
	titleTitle    string
	titleDate     string
	titleRev      string
	titleCompany  string
	titleAuthor   string
	titleComments []string
)

var schTitleCmd = &cobra.Command{
	Use:   "title <schematic_file>",
	Short: "Update title block fields",
	Long: `Update schematic title block metadata. Fields not passed keep their
current value. The author is stored in title block comment 1 by KiCad
convention.

Examples:
  otse sch title board.kicad_sch --title "Power Supply" --rev B
  otse sch title board.kicad_sch --author "Jordan Bell" --comment 2="Checked"`,
	Args: cobra.ExactArgs(1),
	RunE: runSchTitle,
}

func init() {
	rootCmd.AddCommand(schCmd)
	schCmd.AddCommand(schInfoCmd)
	schCmd.AddCommand(schSetCmd)
	schCmd.AddCommand(schRenameNetCmd)
	schCmd.AddCommand(schTitleCmd)

	schSetCmd.Flags().StringArrayVar(&setProps, "prop", nil, "set a property: Name=Value (repeatable)")
	schSetCmd.Flags().StringArrayVar(&setHide, "hide", nil, "hide a property (repeatable)")
	schSetCmd.Flags().StringArrayVar(&setShow, "show", nil, "show a property (repeatable)")
	schSetCmd.Flags().StringArrayVar(&setRemove, "remove", nil, "remove a property (repeatable)")
	schSetCmd.Flags().StringVarP(&setOutFile, "output", "o", "", "write result to a different file")

	schTitleCmd.Flags().StringVar(&titleTitle, "title", "", "schematic title")
	schTitleCmd.Flags().StringVar(&titleDate, "date", "", "date (YYYY-MM-DD recommended)")
	schTitleCmd.Flags().StringVar(&titleRev, "rev", "", "revision")
	schTitleCmd.Flags().StringVar(&titleCompany, "company", "", "company name")
	schTitleCmd.Flags().StringVar(&titleAuthor, "author", "", "author (stored in comment 1)")
	schTitleCmd.Flags().StringArrayVar(&titleComments, "comment", nil, "comment field: N=text (repeatable)")
}

func runSchInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	sch, err := schematic.Load(filename)
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}

	if len(args) >= 2 {
		return showComponentDetails(sch, args[1])
	}

	showSchemSummary(sch, filename)
	return nil
}

func showSchemSummary(sch *schematic.Schematic, filename string) {
	fmt.Printf("Schematic: %s\n", filename)
	fmt.Printf("Version: %d\n", sch.Version())
	fmt.Printf("Generator: %s\n", sch.Generator())
	fmt.Printf("Paper: %s\n", sch.Paper())
	if id := sch.UUID(); id != "" {
		if _, err := uuid.Parse(id); err != nil {
			fmt.Printf("UUID: %s (malformed)\n", id)
		} else {
			fmt.Printf("UUID: %s\n", id)
		}
	}
	fmt.Println()

	// Title block
	tb := sch.TitleBlockInfo()
	if tb.Title != "" || tb.Revision != "" {
		fmt.Println("Title Block:")
		if tb.Title != "" {
			fmt.Printf("  Title: %s\n", tb.Title)
		}
		if tb.Date != "" {
			fmt.Printf("  Date: %s\n", tb.Date)
		}
		if tb.Revision != "" {
			fmt.Printf("  Revision: %s\n", tb.Revision)
		}
		if tb.Company != "" {
			fmt.Printf("  Company: %s\n", tb.Company)
		}
		fmt.Println()
	}

	// Statistics
	root := sch.Root()
	fmt.Println("Statistics:")
	fmt.Printf("  Components: %d\n", len(sch.Symbols()))
	fmt.Printf("  Wires: %d\n", len(sexp.ChildrenOfKind(root, "wire")))
	fmt.Printf("  Buses: %d\n", len(sexp.ChildrenOfKind(root, "bus")))
	fmt.Printf("  Junctions: %d\n", len(sexp.ChildrenOfKind(root, "junction")))
	fmt.Printf("  Labels: %d\n", len(sch.FindLabels([]string{"label"}, "")))
	fmt.Printf("  Global labels: %d\n", len(sch.FindLabels([]string{"global_label"}, "")))
	fmt.Printf("  Hierarchical labels: %d\n", len(sch.FindLabels([]string{"hierarchical_label"}, "")))
	fmt.Printf("  Sheets: %d\n", len(sexp.ChildrenOfKind(root, "sheet")))
	fmt.Printf("  No-connects: %d\n", len(sexp.ChildrenOfKind(root, "no_connect")))
	fmt.Println()

	// Component list grouped by reference prefix
	comps := sch.ListComponents("")
	if len(comps) > 0 {
		fmt.Println("Components:")

		byPrefix := make(map[string][]string)
		for _, c := range comps {
			if c.Reference != "" {
				prefix := getRefPrefix(c.Reference)
				byPrefix[prefix] = append(byPrefix[prefix], c.Reference)
			}
		}

		var prefixes []string
		for p := range byPrefix {
			prefixes = append(prefixes, p)
		}
		sort.Strings(prefixes)

		for _, prefix := range prefixes {
			refs := byPrefix[prefix]
			sort.Strings(refs)
			fmt.Printf("  %s: %s\n", prefix, strings.Join(refs, ", "))
		}
		fmt.Println()
	}

	// Labels
	labels := sch.NetNames()
	if len(labels) > 0 {
		fmt.Println("Net Labels:")
		sort.Strings(labels)
		for _, l := range labels {
			fmt.Printf("  %s\n", l)
		}
	}
}

func showComponentDetails(sch *schematic.Schematic, ref string) error {
	comp, err := sch.GetComponent(ref)
	if err != nil {
		return err
	}

	fmt.Printf("Component: %s\n", ref)
	if sym, ok := sch.FindSymbol(ref); ok {
		if libID, ok := sexp.FindChild(sym, "lib_id"); ok {
			if id, ok := sexp.TextAt(libID, 1); ok {
				fmt.Printf("Library: %s\n", id)
			}
		}
	}
	fmt.Println()

	if len(comp.Properties) > 0 {
		fmt.Println("Properties:")
		for _, prop := range comp.Properties {
			marker := ""
			if !prop.Visible {
				marker = " (hidden)"
			}
			fmt.Printf("  %s: %s%s\n", prop.Name, prop.Value, marker)
		}
	}
	return nil
}

func runSchSet(cmd *cobra.Command, args []string) error {
	filename, reference := args[0], args[1]

	edits := make(map[string]schematic.PropertyEdit)
	for _, spec := range setProps {
		name, value, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("invalid --prop %q: expected Name=Value", spec)
		}
		edits[name] = schematic.SetValue(value)
	}
	for _, name := range setHide {
		edit := edits[name]
		hidden := false
		edit.Visible = &hidden
		edits[name] = edit
	}
	for _, name := range setShow {
		edit := edits[name]
		visible := true
		edit.Visible = &visible
		edits[name] = edit
	}
	for _, name := range setRemove {
		edits[name] = schematic.PropertyEdit{Remove: true}
	}
	if len(edits) == 0 {
		return fmt.Errorf("nothing to do: pass --prop, --hide, --show, or --remove")
	}

	sch, err := schematic.Load(filename)
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}
	result, err := sch.UpdateComponent(reference, edits)
	if err != nil {
		return err
	}

	out := setOutFile
	if out == "" {
		out = filename
	}
	if err := sch.Commit(out); err != nil {
		return err
	}

	logger.Info("component updated", "reference", reference, "affected", result.Affected)
	fmt.Printf("Updated %s: %s\n", reference, joinOr(result.Changes, "no changes"))
	return nil
}

func runSchRenameNet(cmd *cobra.Command, args []string) error {
	filename, oldName, newName := args[0], args[1], args[2]

	sch, err := schematic.Load(filename)
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}
	count, err := sch.RenameNet(oldName, newName)
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Printf("No labels named %q found — nothing changed\n", oldName)
		return nil
	}
	if err := sch.Commit(filename); err != nil {
		return err
	}
	fmt.Printf("Renamed %d label(s) from %q to %q\n", count, oldName, newName)
	return nil
}

func runSchTitle(cmd *cobra.Command, args []string) error {
	filename := args[0]

	fields := make(map[string]string)
	addIfSet := func(c *cobra.Command, name, field, value string) {
		if c.Flags().Changed(name) {
			fields[field] = value
		}
	}
	addIfSet(cmd, "title", "title", titleTitle)
	addIfSet(cmd, "date", "date", titleDate)
	addIfSet(cmd, "rev", "rev", titleRev)
	addIfSet(cmd, "company", "company", titleCompany)
	addIfSet(cmd, "author", "comment1", titleAuthor)
	for _, spec := range titleComments {
		idx, text, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("invalid --comment %q: expected N=text", spec)
		}
		fields["comment"+idx] = text
	}
	if len(fields) == 0 {
		return fmt.Errorf("nothing to do: pass at least one field flag")
	}

	sch, err := schematic.Load(filename)
	if err != nil {
		return fmt.Errorf("error parsing schematic: %w", err)
	}
	count, err := sch.UpdateTitleBlock(fields)
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("Title block already up to date")
		return nil
	}
	if err := sch.Commit(filename); err != nil {
		return err
	}
	fmt.Printf("Updated %d title block field(s)\n", count)
	return nil
}

func getRefPrefix(ref string) string {
	// Extract prefix (letters before numbers)
	for i, c := range ref {
		if c >= '0' && c <= '9' {
			return ref[:i]
		}
	}
	return ref
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, "; ")
}
