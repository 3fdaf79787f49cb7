package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/dimension-tools-mcp/internal/config"
	"github.com/ironsheep/dimension-tools-mcp/internal/logging"
	"github.com/ironsheep/dimension-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("dimension-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "measure":
			os.Exit(runMeasure(os.Args))
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, os.Stderr)
	defer log.Close()
	log.Debugf("Dimension MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Criticalf("Failed to start server: %v", err)
		os.Exit(1)
	}
	if err := srv.Run(); err != nil {
		log.Criticalf("Server error: %v", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("dimension-tools-mcp - measure radii and arc lengths in photographed parts")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  dimension-mcp                 Run the MCP server on stdin/stdout")
	fmt.Println("  dimension-mcp measure [flags] Measure one image from the command line")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Run 'dimension-mcp measure --help' for measurement flags.")
	fmt.Println()
	fmt.Println("Environment variables (also read from .env):")
	fmt.Printf("  %-30s log level: debug, info, warn, error (default info)\n", config.EnvLogLevel)
	fmt.Printf("  %-30s default directory for MCP outputs (default %s)\n", config.EnvOutputDir, os.TempDir())
	fmt.Printf("  %-30s contour backend: native or opencv (default native)\n", config.EnvBackend)
	fmt.Printf("  %-30s minimum circle radius (default 1)\n", config.EnvMinRadius)
	fmt.Printf("  %-30s minimum arc length (default 2)\n", config.EnvMinArcLength)
	fmt.Printf("  %-30s arc annotation colour (default #00ff00)\n", config.EnvArcColor)
	fmt.Printf("  %-30s circle annotation colour (default #0000ff)\n", config.EnvCircleColor)
}
