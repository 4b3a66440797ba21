package cmd

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/autoprim/internal/errorlevel"
	"github.com/Norgate-AV/autoprim/internal/sysinfo"
)

// Injectable for testing
var addrSource sysinfo.AddrSource = net.InterfaceAddrs

func newSysinfoCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "sysinfo",
		Short: "Print facts about this machine",
	}

	ip := &cobra.Command{
		Use:   "ip [index]",
		Short: "Print the index-th IPv4 address (1-based), or 0.0.0.0",
		Args:  cobra.MaximumNArgs(1),
		RunE:  withApp(runSysinfoIP),
	}

	admin := &cobra.Command{
		Use:   "admin",
		Short: "Print 1 when running with administrator rights, else 0",
		Args:  cobra.NoArgs,
		RunE:  withApp(runSysinfoAdmin),
	}

	c.AddCommand(ip, admin)
	return c
}

func runSysinfoIP(app *App, _ *cobra.Command, args []string) error {
	index := 1

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return errorlevel.New(errorlevel.Failure, fmt.Errorf("invalid address index %q", args[0]))
		}

		index = n
	}

	app.Println(sysinfo.IPAddressFrom(addrSource, index))
	return nil
}

func runSysinfoAdmin(app *App, _ *cobra.Command, _ []string) error {
	checker, err := app.platform.PrivilegeChecker()
	if err != nil {
		return errorlevel.New(errorlevel.Failure, err)
	}

	if checker.IsElevated() {
		app.Println(1)
	} else {
		app.Println(0)
	}

	return nil
}
