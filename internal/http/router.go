package http

import (
	"net/http"
	"strings"
)

// RouterConfig wires handlers and middleware into the HTTP surface. Auth,
// availability, and meeting routes sit behind RequireAuth; the booking
// routes stay public so anonymous visitors can reserve slots.
type RouterConfig struct {
	Auth         *AuthHandler
	Availability *AvailabilityHandler
	Bookings     *BookingHandler
	Meetings     *MeetingHandler
	RequireAuth  func(http.Handler) http.Handler
	Middleware   []func(http.Handler) http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	protected := func(handler http.HandlerFunc) http.Handler {
		if cfg.RequireAuth != nil {
			return cfg.RequireAuth(handler)
		}
		return handler
	}

	if cfg.Auth != nil {
		mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.Register(w, r)
		})
		mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.Login(w, r)
		})
		mux.Handle("/api/auth/profile", protected(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Auth.Profile(w, r)
		}))
	}

	if cfg.Availability != nil {
		mux.Handle("/api/availability", protected(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Availability.Get(w, r)
			case http.MethodPost:
				cfg.Availability.Set(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		}))
		mux.Handle("/api/availability/", protected(func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/api/availability/")
			switch rest {
			case "":
				http.NotFound(w, r)
			case "duration":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Availability.SetDuration(w, r)
			case "booking-link":
				if r.Method != http.MethodGet {
					methodNotAllowed(w, http.MethodGet)
					return
				}
				cfg.Availability.BookingLink(w, r)
			default:
				if r.Method != http.MethodGet {
					methodNotAllowed(w, http.MethodGet)
					return
				}
				cfg.Availability.DaySlots(w, r, rest)
			}
		}))
	}

	if cfg.Bookings != nil {
		mux.HandleFunc("/api/bookings/book", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Bookings.Book(w, r)
		})
		mux.HandleFunc("/api/bookings/availability/", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			date := strings.TrimPrefix(r.URL.Path, "/api/bookings/availability/")
			cfg.Bookings.DateSlots(w, r, date)
		})
		mux.HandleFunc("/api/bookings/meeting/", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			id := strings.TrimPrefix(r.URL.Path, "/api/bookings/meeting/")
			cfg.Bookings.MeetingDetails(w, r, id)
		})
	}

	if cfg.Meetings != nil {
		mux.Handle("/api/meetings", protected(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Meetings.List(w, r)
			case http.MethodPost:
				cfg.Meetings.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		}))
		mux.Handle("/api/meetings/propose", protected(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Meetings.Propose(w, r)
		}))
		mux.Handle("/api/meetings/", protected(func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/api/meetings/")
			if rest == "" {
				http.NotFound(w, r)
				return
			}

			id, action, _ := strings.Cut(rest, "/")
			r = r.WithContext(ContextWithMeetingID(r.Context(), id))

			switch action {
			case "":
				switch r.Method {
				case http.MethodPut:
					cfg.Meetings.Update(w, r)
				case http.MethodDelete:
					cfg.Meetings.Delete(w, r)
				default:
					methodNotAllowed(w, http.MethodPut, http.MethodDelete)
				}
			case "accept":
				if r.Method != http.MethodPut {
					methodNotAllowed(w, http.MethodPut)
					return
				}
				cfg.Meetings.Accept(w, r)
			case "decline":
				if r.Method != http.MethodPut {
					methodNotAllowed(w, http.MethodPut)
					return
				}
				cfg.Meetings.Decline(w, r)
			default:
				http.NotFound(w, r)
			}
		}))
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
