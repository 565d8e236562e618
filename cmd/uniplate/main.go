package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/conjure-cp/uniplate"
	"github.com/conjure-cp/uniplate/derive"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("uniplate v%s\n", uniplate.Version())
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		if err := handleGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "check":
		if err := handleCheck(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// generateFlags contains flags for the generate command
type generateFlags struct {
	config     string
	output     string
	fileName   string
	noWarnings bool
}

func setupGenerateFlags() (*flag.FlagSet, *generateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &generateFlags{}

	fs.StringVar(&flags.config, "c", "", "path to a YAML configuration file")
	fs.StringVar(&flags.config, "config", "", "path to a YAML configuration file")
	fs.StringVar(&flags.output, "o", "", "output directory (default: the package directory)")
	fs.StringVar(&flags.output, "output", "", "output directory (default: the package directory)")
	fs.StringVar(&flags.fileName, "file-name", "", "name of the generated file (default: "+derive.GeneratedFileName+")")
	fs.BoolVar(&flags.noWarnings, "no-warnings", false, "suppress warning and info messages (only show errors)")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: uniplate generate [flags] [package-dir]\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Generate traversal code for the types marked with //uniplate: directives\n")
		_, _ = fmt.Fprintf(fs.Output(), "in the given package directory (default: the current directory).\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\nDirectives:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  //uniplate:derive                     derive the self-traversal\n")
		_, _ = fmt.Fprintf(fs.Output(), "  //uniplate:walkinto Expr,Type         walk-into list for the self-traversal\n")
		_, _ = fmt.Fprintf(fs.Output(), "  //uniplate:biplate to=T walkinto=A,B  derive a cross-type traversal\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nExamples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  uniplate generate ./ast\n")
		_, _ = fmt.Fprintf(fs.Output(), "  uniplate generate -c uniplate.yaml ./ast\n")
		_, _ = fmt.Fprintf(fs.Output(), "  uniplate generate -o ./generated ./ast\n")
	}

	return fs, flags
}

func handleGenerate(args []string) error {
	fs, flags := setupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("generate command takes at most one package directory")
	}

	dir := "."
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}

	result, err := runGenerate(dir, flags)
	if err != nil {
		return err
	}

	outputDir := flags.output
	if outputDir == "" {
		outputDir = dir
	}

	printResult(dir, result, flags.noWarnings)
	if !result.Success {
		os.Exit(1)
	}

	if err := result.WriteFiles(outputDir); err != nil {
		return fmt.Errorf("writing generated files: %w", err)
	}
	for _, file := range result.Files {
		fmt.Printf("\nOutput written to: %s/%s\n", outputDir, file.Name)
	}
	return nil
}

func handleCheck(args []string) error {
	fs, flags := setupGenerateFlags()
	fs.Init("check", flag.ContinueOnError)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: uniplate check [flags] [package-dir]\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Run the generator without writing any files, reporting the issues it\n")
		_, _ = fmt.Fprintf(fs.Output(), "would encounter. Exits non-zero when generation would fail.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("check command takes at most one package directory")
	}

	dir := "."
	if fs.NArg() == 1 {
		dir = fs.Arg(0)
	}

	result, err := runGenerate(dir, flags)
	if err != nil {
		return err
	}

	printResult(dir, result, flags.noWarnings)
	if !result.Success {
		os.Exit(1)
	}
	fmt.Println("\n✓ Check passed; no files written")
	return nil
}

func runGenerate(dir string, flags *generateFlags) (*derive.Result, error) {
	var opts []derive.Option
	if flags.config != "" {
		cfg, err := derive.LoadConfig(flags.config)
		if err != nil {
			return nil, err
		}
		opts = append(opts, derive.WithConfig(cfg))
		if flags.fileName == "" && cfg.Output != "" {
			flags.fileName = cfg.Output
		}
	}
	if flags.fileName != "" {
		opts = append(opts, derive.WithFileName(flags.fileName))
	}

	result, err := derive.New(opts...).GenerateDir(dir)
	if err != nil {
		return nil, fmt.Errorf("generating traversals for %s: %w", dir, err)
	}
	return result, nil
}

func printResult(dir string, result *derive.Result, noWarnings bool) {
	fmt.Printf("Uniplate Traversal Generator\n")
	fmt.Printf("============================\n\n")
	fmt.Printf("uniplate version: %s\n", uniplate.Version())
	fmt.Printf("Package: %s (%s)\n", result.PackageName, dir)
	fmt.Printf("Uniplate Methods: %d\n", result.GeneratedMethods)
	fmt.Printf("Biplate Functions: %d\n", result.GeneratedBiplates)
	fmt.Printf("Load Time: %v\n", result.LoadTime.Round(time.Microsecond))
	fmt.Printf("Generate Time: %v\n\n", result.GenerateTime.Round(time.Microsecond))

	min := derive.SeverityInfo
	if noWarnings {
		min = derive.SeverityError
	}
	if issues := result.IssuesBySeverity(min); len(issues) > 0 {
		fmt.Printf("Issues (%d):\n", len(issues))
		for _, issue := range issues {
			fmt.Printf("  %s\n", issue.String())
		}
		fmt.Println()
	}

	if result.Success {
		fmt.Printf("✓ Generation successful")
		if result.InfoCount > 0 || result.WarningCount > 0 {
			fmt.Printf(" (%d info, %d warnings)", result.InfoCount, result.WarningCount)
		}
		fmt.Println()
	} else {
		fmt.Printf("✗ Generation failed: %d error(s)", result.ErrorCount+result.CriticalCount)
		if result.WarningCount > 0 {
			fmt.Printf(", %d warning(s)", result.WarningCount)
		}
		fmt.Println()
	}
}

var commands = []string{"generate", "check", "version", "help"}

// suggestCommand returns the known command closest to input within an edit
// distance of 2, or "" when nothing is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
	for _, cmd := range commands {
		if d := editDistance(input, cmd); d < bestDist {
			best = cmd
			bestDist = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`uniplate - boilerplate-free tree traversal for Go

Usage:
  uniplate <command> [options]

Commands:
  generate    Generate traversal code for a package
  check       Report generation issues without writing files
  version     Show version information
  help        Show this help message

Examples:
  uniplate generate ./ast
  uniplate generate -c uniplate.yaml ./ast
  uniplate check ./ast

Run 'uniplate <command> --help' for more information on a command.`)
}
