package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceSchEdit/pkg/kicad/project"
)

var proCmd = &cobra.Command{
	Use:   "pro",
	Short: "KiCad project file operations",
	Long:  `Commands for working with KiCad project files (.kicad_pro)`,
}

var netclassCmd = &cobra.Command{
	Use:   "netclass",
	Short: "Net class management",
}

var netclassListCmd = &cobra.Command{
	Use:   "list <project_file>",
	Short: "List net classes",
	Args:  cobra.ExactArgs(1),
	RunE:  runNetclassList,
}

var (
	netclassRules    []string
	netclassPatterns []string
)

var netclassSetCmd = &cobra.Command{
	Use:   "set <project_file> <class_name>",
	Short: "Create or update a net class",
	Long: `Create or update a net class. Rules merge over existing values;
patterns are appended with duplicates ignored.

Examples:
  otse pro netclass set board.kicad_pro USB --rule track_width=0.3
  otse pro netclass set board.kicad_pro HV --rule clearance=1.5 --add-pattern "HV_*"`,
	Args: cobra.ExactArgs(2),
	RunE: runNetclassSet,
}

func init() {
	rootCmd.AddCommand(proCmd)
	proCmd.AddCommand(netclassCmd)
	netclassCmd.AddCommand(netclassListCmd)
	netclassCmd.AddCommand(netclassSetCmd)

	netclassSetCmd.Flags().StringArrayVar(&netclassRules, "rule", nil, "rule override: name=value in mm (repeatable)")
	netclassSetCmd.Flags().StringArrayVar(&netclassPatterns, "add-pattern", nil, "wildcard net pattern to add (repeatable)")
}

func runNetclassList(cmd *cobra.Command, args []string) error {
	proj, err := project.Load(args[0])
	if err != nil {
		return err
	}

	classes := proj.NetClasses()
	if len(classes) == 0 {
		fmt.Println("No net classes defined")
		return nil
	}

	for _, cls := range classes {
		fmt.Printf("%s\n", cls.Name)
		fields := make([]string, 0, len(cls.Rules))
		for field := range cls.Rules {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Printf("  %s: %g\n", field, cls.Rules[field])
		}
		if len(cls.Patterns) > 0 {
			fmt.Printf("  patterns: %s\n", strings.Join(cls.Patterns, ", "))
		}
	}
	return nil
}

func runNetclassSet(cmd *cobra.Command, args []string) error {
	filename, className := args[0], args[1]

	rules := make(map[string]float64)
	for _, spec := range netclassRules {
		name, value, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("invalid --rule %q: expected name=value", spec)
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid --rule %q: %w", spec, err)
		}
		rules[name] = f
	}

	proj, err := project.Load(filename)
	if err != nil {
		return err
	}

	created := false
	var changes []string
	for i, pattern := range netclassPatterns {
		r := rules
		if i > 0 {
			r = nil // rules applied on the first pass only
		}
		c, ch, err := proj.UpdateNetClass(className, r, pattern)
		if err != nil {
			return err
		}
		created = created || c
		changes = append(changes, ch...)
	}
	if len(netclassPatterns) == 0 {
		c, ch, err := proj.UpdateNetClass(className, rules, "")
		if err != nil {
			return err
		}
		created = c
		changes = ch
	}

	if err := proj.Save(); err != nil {
		return err
	}

	action := "Updated"
	if created {
		action = "Created"
	}
	fmt.Printf("%s net class %q: %s\n", action, className, joinOr(changes, "no rule changes"))
	return nil
}
