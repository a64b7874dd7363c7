package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/armine/cmd"
	"github.com/timtadh/armine/config"
	"github.com/timtadh/armine/lattice"
	"github.com/timtadh/armine/miners"
	"github.com/timtadh/armine/miners/apriori"
	"github.com/timtadh/armine/miners/fptree"
)

func init() {
	cmd.UsageMessage = "armine --help"
	cmd.ExtendedMessage = `
armine - association rule itemset miner

$ armine -o <path> --support=<float> [Global Options] \
    <mode> [Mode Options] <input-path> \
    [<reporter> [Reporter Options]]

Note: You must supply [Global Options] then <mode> [Mode Options] then
      <input-path> and finally the reporters. Changes in ordering are not
      supported.

Note: You may either supply the <input-path> as a regular file, a gzipped
      file or a directory of such files. If supplying a gzip file the file
      extension must be '.gz'.

Note: If you don't supply a reporter by default it will use 'chain log file'.

Input Format
    One transaction per line. Items are positive integers separated by
    whitespace. Repeated items in a line count once. A blank line is an
    error. The rare mode skips lines starting with '#', '%' or '@'.

        1 2 3
        1 2
        2 3 5

Global Options
    -h, --help                view this message
    --modes                   show the available modes
    --reporters               show the available reporters
    -o, --output=<path>       path to output directory (required)
                              NB: will overwrite contents of dir
    -c, --cache=<path>        path to cache directory (optional). When given
                              support tables and indices are kept in B+trees
                              under it instead of in memory.
                              NB: will overwrite contents of dir
    --support=<float>         minimum support as a fraction of the
                              transactions, in (0, 1] (required)
    --skip-log=<level>        don't output the given log level.

Developer Options
    --cpu-profile=<path>      write a cpu-profile to this location

Modes
    lattice                   enumerate the whole itemset lattice and report
                              the frequent itemsets labeled Frequent, Closed,
                              Maximal or Closed and Maximal
    rare                      level wise search for the minimal rare itemsets
    tree                      frequent itemsets by prefix tree elimination

    lattice Options
        --max-subsets=<int>   refuse lattices with more itemsets than this
                              (default 1048576)
        --vertical            count supports with item tid-set intersection

    tree Options
        --max-steps=<int>     stop after this many steps (default: run until
                              the tree is empty)
        --vertical            count supports with item tid-set intersection

Reporters
    chain                     chain several reporters together (end the chain
                              with endchain)
    log                       log the results
    file                      write the results to a file in the output dir
    table                     render the results as a table
    count                     write the number of results to a file
    max                       only pass maximal results to an inner reporter
    closed                    only pass closed results to an inner reporter
    unique                    only pass each itemset once to an inner reporter
    heap-profile              write heap profiles while reporting

    log Options
        -l, level=<string>    log level the logger should use
        -p, prefix=<string>   a prefix to put before the log line

    file Options
        -n, name=<name>       the name of the file in the output directory
                              (default lattice.txt, rare.txt or frequent.txt)

    table Options
        -n, name=<name>       write the table to this file in the output
                              directory instead of stdout
        -t, title=<string>    title of the table

    count Options
        -n, name=<name>       the name of the file (default count)

    heap-profile Options
        -p, profile=<path>    where you want the heap-profile written
        -e, every=<int>       collect every n results (default 1)
        -a, after=<int>       collect after n results (default 0)

    Examples

        $ armine -o /tmp/armine --support=.6 lattice ./data/tx.dat

        $ armine -o /tmp/armine --support=.5 rare ./data/tx.dat.gz \
            chain log table endchain

        $ armine --skip-log=DEBUG -o /tmp/armine --support=.4 \
            lattice --vertical ./data/tx.dat \
            chain \
                log \
                max file -n maximal.txt \
            endchain
`
}

func latticeMode(argv []string, conf *config.Config) (miners.Miner, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
			"max-subsets=",
			"vertical",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "--max-subsets":
			conf.MaxSubsets = int64(cmd.ParseInt(oa.Arg()))
		case "--vertical":
			conf.Vertical = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	return lattice.NewMiner(conf), args
}

func rareMode(argv []string, conf *config.Config) (miners.Miner, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	return apriori.NewMiner(conf), args
}

func treeMode(argv []string, conf *config.Config) (miners.Miner, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
			"max-steps=",
			"vertical",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	maxSteps := 0
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "--max-steps":
			maxSteps = cmd.ParseInt(oa.Arg())
		case "--vertical":
			conf.Vertical = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	return fptree.NewMiner(conf, maxSteps), args
}

func main() {
	os.Exit(run())
}

func run() int {
	modes := map[string]cmd.Mode{
		"lattice": latticeMode,
		"rare":    rareMode,
		"tree":    treeMode,
	}

	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"ho:c:",
		[]string{
			"help",
			"output=", "cache=",
			"modes", "reporters",
			"support=",
			"skip-log=",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "could not process your arguments (perhaps you forgot a mode?) try:")
		fmt.Fprintf(os.Stderr, "$ %v lattice %v\n", os.Args[0], strings.Join(os.Args[1:], " "))
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	output := ""
	cache := ""
	support := 0.0
	cpuProfile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-o", "--output":
			output = cmd.EmptyDir(oa.Arg())
		case "-c", "--cache":
			cache = cmd.EmptyDir(oa.Arg())
		case "--support":
			support = cmd.ParseSupport(oa.Arg())
		case "--modes":
			fmt.Fprintln(os.Stderr, "Modes:")
			for k := range modes {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--reporters":
			fmt.Fprintln(os.Stderr, "Reporters:")
			for k := range cmd.Reporters {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--skip-log":
			level := oa.Arg()
			errors.Logf("INFO", "not logging level %v", level)
			errors.SkipLogging[level] = true
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if support == 0 {
		fmt.Fprintf(os.Stderr, "You must supply a minimum support (--support)\n")
		cmd.Usage(cmd.ErrorCodes["badsupport"])
	}

	if output == "" {
		fmt.Fprintf(os.Stderr, "You must supply an output dir (-o)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	if cpuProfile != "" {
		errors.Logf("DEBUG", "starting cpu profile: %v", cpuProfile)
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			errors.Logf("DEBUG", "closing cpu profile")
			pprof.StopCPUProfile()
			err := f.Close()
			errors.Logf("DEBUG", "closed cpu profile, err: %v", err)
		}()
	}

	conf := &config.Config{
		Cache:   cache,
		Output:  output,
		Support: support,
	}
	return cmd.Main(args, conf, modes)
}
