package main

import (
	"flag"

	"github.com/linrel/linrel/internal/auth"
	"github.com/linrel/linrel/internal/conn"
	"github.com/linrel/linrel/internal/relation"
	"github.com/linrel/linrel/pkg"
)

func main() {
	port := flag.Int("port", 7089, "listening port")
	user := flag.String("user", "admin", "name of the initial admin user")
	password := flag.String("password", "admin", "password of the initial admin user")
	debug := flag.Bool("debug", false, "show debug logs")
	flag.Parse()

	if *debug {
		pkg.SetLogLevel(pkg.LogLevelDebug)
	}

	reg := relation.NewRegistry(nil)
	users := []*auth.User{auth.NewUser(*user, *password, auth.RoleAdmin)}

	server := conn.NewServer(reg, users)
	if err := server.Listen(*port); err != nil {
		pkg.FatalLog(err)
	}
}
