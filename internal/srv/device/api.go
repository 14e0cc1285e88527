package device

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jypelle/skyview/apimodel"
	"github.com/jypelle/skyview/internal/srv/config"
	"github.com/jypelle/skyview/internal/srv/event"
	"github.com/jypelle/skyview/internal/tool"
	"github.com/sirupsen/logrus"
	"image"
	"image/png"
	"net/http"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"time"
)

// FrameSource gives the last presented frame
type FrameSource interface {
	Snapshot() *image.RGBA
}

type Api struct {
	eventChannel chan event.ApiEvent

	router    *mux.Router
	apiRouter *mux.Router
	server    *http.Server

	config  *config.ServerConfig
	frames  FrameSource
	started bool
}

func NewApi(serverConfig *config.ServerConfig, frames FrameSource) *Api {
	api := Api{
		config:       serverConfig,
		frames:       frames,
		eventChannel: make(chan event.ApiEvent),
	}

	api.router = mux.NewRouter().StrictSlash(false)

	// API Routes
	api.apiRouter = api.router.PathPrefix("/api").Subrouter()
	api.apiRouter.NotFoundHandler = http.HandlerFunc(ErrorNotFoundAction)
	api.apiRouter.MethodNotAllowedHandler = http.HandlerFunc(ErrorMethodNotAllowedAction)

	// Auth middleware
	api.apiRouter.Use(
		func(handler http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				defer func() {
					if rec := recover(); rec != nil {
						logrus.Warningf("recovered from panic : [%v] - stack trace : \n [%s]", rec, debug.Stack())
						GlobalErrorAction(w, fmt.Sprintf("%v", rec), http.StatusInternalServerError)
					}
				}()

				// Check API Key
				if r.Header.Get("x-api-key") != serverConfig.ServerParam.ApiParam.ApiKey {
					ErrorStatusAction(w, r, http.StatusForbidden)
					return
				}

				logrus.Debugf("PATH: %s %s", r.Host, r.URL.Path)

				handler.ServeHTTP(w, r)
			})
		})

	api.apiRouter.HandleFunc("/is_alive",
		func(w http.ResponseWriter, r *http.Request) {
			ErrorStatusAction(w, r, http.StatusOK)
		}).Methods("GET")

	api.apiRouter.HandleFunc("/screen",
		func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(serverConfig.ScreenState.Current()); err != nil {
				logrus.Warnf("Unable to encode screen state: %v", err)
			}
		}).Methods("GET")

	api.apiRouter.HandleFunc("/screen/{state}",
		func(w http.ResponseWriter, r *http.Request) {
			var data interface{}
			switch state := mux.Vars(r)["state"]; state {
			case config.ScreenOn, config.ScreenOff:
				data = event.ApiEventScreenData{Screen: state}
			case "toggle":
				data = event.ApiEventToggleScreenData{}
			default:
				apimodel.UnknownScreenStateErrorMessage.SendError(w)
				return
			}
			api.send(w, r, data)
		}).Methods("POST")

	api.apiRouter.HandleFunc("/mode/{mode}",
		func(w http.ResponseWriter, r *http.Request) {
			mode := mux.Vars(r)["mode"]
			switch mode {
			case config.ModeAuto, config.ModeIdle, config.ModeActive:
			default:
				apimodel.UnknownModeErrorMessage.SendError(w)
				return
			}
			api.send(w, r, event.ApiEventModeData{Mode: mode})
		}).Methods("POST")

	api.apiRouter.HandleFunc("/frame",
		func(w http.ResponseWriter, r *http.Request) {
			if api.frames == nil {
				ErrorStatusAction(w, r, http.StatusServiceUnavailable)
				return
			}
			w.Header().Set("Content-Type", "image/png")
			if err := png.Encode(w, api.frames.Snapshot()); err != nil {
				logrus.Warnf("Unable to encode frame: %v", err)
			}
		}).Methods("GET")

	// Tell the browser that it's OK for JS to communicate with the server
	headersOk := handlers.AllowedHeaders([]string{"Authorization", "x-api-key"})
	originsOk := handlers.AllowedOrigins([]string{"*"})
	methodsOk := handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"})

	api.server = &http.Server{
		Addr:         ":" + strconv.FormatInt(serverConfig.ServerParam.ApiParam.SslPort, 10),
		Handler:      api.Handler(headersOk, originsOk, methodsOk),
		ReadTimeout:  time.Second * 240,
		WriteTimeout: time.Second * 240,
		IdleTimeout:  time.Second * 240,
	}

	return &api
}

// Handler wraps the router with compression and CORS
func (d *Api) Handler(corsOptions ...handlers.CORSOption) http.Handler {
	return handlers.CompressHandler(handlers.CORS(corsOptions...)(d.router))
}

// send hands the request to the event loop and waits for its verdict
func (d *Api) send(w http.ResponseWriter, r *http.Request, data interface{}) {
	result := make(chan error)
	select {
	case d.eventChannel <- event.ApiEvent{Result: result, Data: data}:
	case <-r.Context().Done():
		return
	}
	if err := <-result; err != nil {
		GlobalErrorAction(w, err.Error(), http.StatusInternalServerError)
		return
	}
	ErrorStatusAction(w, r, http.StatusOK)
}

func (d *Api) Start() {
	logrus.Infof("Start api device")

	if !d.config.ServerParam.ApiParam.Enabled {
		return
	}

	apiParam := d.config.ServerParam.ApiParam
	generated, err := tool.EnsureSelfSignedCertificate(d.selfSignedKeyFilename(), d.selfSignedCertFilename(), tool.CertSubject{
		Organization: apiParam.CertOrganization,
		CommonName:   "Skyview Server",
		Hosts:        apiParam.CertHosts,
		Validity:     time.Duration(apiParam.CertValidityDays) * 24 * time.Hour,
	})
	if err != nil {
		logrus.Fatalf("Unable to prepare cert and key files: %v\n", err)
	}
	if generated {
		logrus.Info("Self-signed cert and key files generated")
	}

	d.started = true

	// Launch https server
	go func() {
		err := d.server.ListenAndServeTLS(d.selfSignedCertFilename(), d.selfSignedKeyFilename())
		if err != nil && err != http.ErrServerClosed {
			logrus.Error(err)
		}
	}()
}

func (d *Api) StopSendingEvent() {
	logrus.Infof("Stop api device")
	if d.started {
		d.server.Shutdown(context.Background())
	}
}

func (d *Api) EventChannel() chan event.ApiEvent {
	return d.eventChannel
}

func (d *Api) selfSignedKeyFilename() string {
	return filepath.Join(d.config.ConfigDir, "key.pem")
}

func (d *Api) selfSignedCertFilename() string {
	return filepath.Join(d.config.ConfigDir, "cert.pem")
}

func ErrorNotFoundAction(w http.ResponseWriter, r *http.Request) {
	ErrorStatusAction(w, r, http.StatusNotFound)
}

func ErrorMethodNotAllowedAction(w http.ResponseWriter, r *http.Request) {
	ErrorStatusAction(w, r, http.StatusMethodNotAllowed)
}

func ErrorStatusAction(w http.ResponseWriter, r *http.Request, status int) {
	GlobalErrorAction(w, "", status)
}

func GlobalErrorAction(w http.ResponseWriter, message string, status int) {
	apimodel.ErrorMessage{ErrStatusCode: status, ErrMessage: message}.SendError(w)
}
