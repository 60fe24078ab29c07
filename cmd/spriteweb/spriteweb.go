// Command spriteweb serves a sprite file's sprites as PNG, GIF and BMP.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"golang.org/x/net/trace"

	"github.com/spriteview/go-spritefile/paths"
	"github.com/spriteview/go-spritefile/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for spriteweb")
	accessLog     = flag.Bool("access_log", true, "whether to write a combined access log to stderr")

	spriteFilePath string
)

func main() {
	paths.SetupFilePathFlag("Sprites", "spritefile", &spriteFilePath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if spriteFilePath == "" {
		glog.Exitf("no sprite file: pass -spritefile or put one named Sprites in %v", paths.Dirs())
	}

	r := mux.NewRouter()
	web.NewHandler(spriteFilePath).RegisterRoutes(r)
	r.HandleFunc("/debug/requests", trace.Traces)
	r.HandleFunc("/debug/events", trace.Events)

	var h http.Handler = handlers.CompressHandler(r)
	if *accessLog {
		h = handlers.CombinedLoggingHandler(os.Stderr, h)
	}

	glog.Infof("spriteweb serving %s on %s", spriteFilePath, *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, h))
}
