package main

import (
	"log"
	"os"

	"github.com/nicolaslenfant/gatk/svnorm_api"
	cli "github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:            "svnorm",
		Usage:           "A tool to normalize single-sample 10x Long Ranger SV VCF files to breakend notation",
		HideHelpCommand: true,
		Version:         "0.1.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:     "nodate",
				Aliases:  []string{"nd"},
				Usage:    "Don't add the current date to the output VCF header",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "The location of the output VCF file, defaults to stdout",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "profile",
				Aliases:  []string{"p"},
				Usage:    "Profile file (YAML) mapping the normalized annotations to the caller's INFO keys",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "reference",
				Aliases:  []string{"r"},
				Usage:    "The reference FASTA file, a faidx index (.fai) must exist next to it",
				Required: true,
				Category: "Required",
			},
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "The input VCF file to normalize",
				Required: true,
				Category: "Required",
			},
		},
		Action: func(Cctx *cli.Context) error {
			return svnorm_api.Execute(Cctx)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New(os.Stderr, "", 0).Fatal(err)
	}
}
