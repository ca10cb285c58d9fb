package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/electronjoe/PhotoMap/internal/config"
	"github.com/electronjoe/PhotoMap/internal/dropwindow"
	"github.com/electronjoe/PhotoMap/internal/extract"
	"github.com/electronjoe/PhotoMap/internal/maplink"
	"github.com/electronjoe/PhotoMap/internal/photo"
)

func main() {
	configPath := flag.String("config", "", "Path to config.json (default ~/.photomap/config.json)")
	noBrowser := flag.Bool("no-browser", false, "Do not open the map in a browser")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [photo ...]\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "With no photos, opens a window to drop one on.")
		flag.PrintDefaults()
	}
	flag.Parse()

	// 1. Read config
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Read()
	}
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}
	if *noBrowser {
		cfg.OpenBrowser = false
	}

	logger := cfg.NewLogger(os.Stderr)

	// 2. Photos on the command line are processed without a window
	if flag.NArg() > 0 {
		extractor := extract.New(photo.NewDecoder(cfg.MaxFileSize), logger, nil)
		browser := maplink.NewOpener()
		located := 0
		for _, path := range flag.Args() {
			res := extractor.Extract(path)
			fmt.Println(extract.Banner(path, res))
			if !res.OK() {
				continue
			}
			located++
			link, err := extract.ShowOnMap(res, cfg.MapBaseURL, cfg.OpenBrowser, browser)
			if link == "" {
				log.Fatalf("Invalid map_base_url: %v", err)
			}
			fmt.Println(link)
			if err != nil {
				logger.Error("Failed to open browser", "url", link, "error", err)
			}
		}
		if located < flag.NArg() {
			os.Exit(1)
		}
		return
	}

	// 3. Otherwise run the drop window
	window := dropwindow.New(dropwindow.Options{
		MapBaseURL:  cfg.MapBaseURL,
		MaxFileSize: cfg.MaxFileSize,
		OpenBrowser: cfg.OpenBrowser,
		Logger:      logger,
	})
	if err := dropwindow.Run(window); err != nil {
		log.Fatalf("Ebiten run error: %v", err)
	}
}
