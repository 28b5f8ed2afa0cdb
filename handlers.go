package main

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"manager/pkg/store"
	"manager/repos"
)

// App bundles the repositories the handlers work against. The store backend
// behind them was fixed at startup.
type App struct {
	Users    *repos.Users
	Orders   *repos.Orders
	Finance  *repos.Finance
	Projects *repos.Projects
	Tasks    *repos.Tasks
	Earnings *repos.Earnings
	Log      *logrus.Logger
}

// Every response is {ok:true,data:...} or {ok:false,error:...} and nothing
// else.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}

func respondErr(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"ok": false, "error": msg})
}

// fail maps core failures onto the envelope: validation and not-found are
// 400s carrying the reason text, anything unexpected a generic 500.
func (app *App) fail(c *gin.Context, err error) {
	var ve *repos.ValidationError
	switch {
	case errors.As(err, &ve):
		respondErr(c, http.StatusBadRequest, ve.Reason)
	case errors.Is(err, store.ErrNotFound):
		respondErr(c, http.StatusBadRequest, "not found")
	default:
		app.Log.WithError(err).Error("request failed")
		respondErr(c, http.StatusInternalServerError, "internal error")
	}
}

func setupRoutes(r *gin.Engine, app *App) {
	r.GET("/", healthHandler)
	r.GET("/healthz", healthHandler)

	api := r.Group("/api")
	api.POST("/login", app.loginHandler)
	api.POST("/users", app.createUserHandler)
	api.GET("/users", app.listUsersHandler)
	api.POST("/users/:login/profile", app.setProfileHandler)
	api.POST("/orders", app.createOrderHandler)
	api.GET("/orders", app.listOrdersHandler)
	api.POST("/orders/:id/toggle", app.toggleOrderHandler)
	api.POST("/finance", app.recordFinanceHandler)
	api.GET("/finance", app.financeSummaryHandler)
	api.POST("/projects", app.createProjectHandler)
	api.GET("/projects", app.listProjectsHandler)
	api.POST("/projects/:id/notes", app.addProjectNoteHandler)
	api.POST("/tasks", app.createTaskHandler)
	api.GET("/tasks", app.listTasksHandler)
	api.POST("/tasks/:id/toggle", app.toggleTaskHandler)
	api.POST("/earnings", app.recordEarningHandler)
	api.GET("/earnings", app.earningsSummaryHandler)
}

func healthHandler(c *gin.Context) {
	c.String(http.StatusOK, "Manager 1.0 API OK")
}

func (app *App) loginHandler(c *gin.Context) {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid")
		return
	}
	id, err := app.Users.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, id)
}

func (app *App) createUserHandler(c *gin.Context) {
	var req repos.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "missing")
		return
	}
	u, err := app.Users.Create(c.Request.Context(), req)
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, u)
}

func (app *App) listUsersHandler(c *gin.Context) {
	users, err := app.Users.List(c.Request.Context())
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, users)
}

func (app *App) setProfileHandler(c *gin.Context) {
	var data map[string]any
	if err := c.ShouldBindJSON(&data); err != nil {
		respondErr(c, http.StatusBadRequest, "invalid")
		return
	}
	u, err := app.Users.SetProfile(c.Request.Context(), c.Param("login"), data)
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, u)
}

func (app *App) createOrderHandler(c *gin.Context) {
	var req repos.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "missing title")
		return
	}
	o, err := app.Orders.Create(c.Request.Context(), req)
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, o)
}

func (app *App) listOrdersHandler(c *gin.Context) {
	orders, err := app.Orders.List(c.Request.Context())
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, orders)
}

func (app *App) toggleOrderHandler(c *gin.Context) {
	o, err := app.Orders.ToggleDone(c.Request.Context(), c.Param("id"))
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, o)
}

func (app *App) recordFinanceHandler(c *gin.Context) {
	var req struct {
		Amount any    `json:"amount"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "amount")
		return
	}
	entry, err := app.Finance.Record(c.Request.Context(), req.Amount, req.Note)
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, entry)
}

func (app *App) financeSummaryHandler(c *gin.Context) {
	s, err := app.Finance.Summary(c.Request.Context())
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, s)
}

func (app *App) createProjectHandler(c *gin.Context) {
	var req repos.CreateProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "name")
		return
	}
	p, err := app.Projects.Create(c.Request.Context(), req)
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, p)
}

func (app *App) listProjectsHandler(c *gin.Context) {
	projects, err := app.Projects.List(c.Request.Context())
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, projects)
}

func (app *App) addProjectNoteHandler(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "text")
		return
	}
	p, err := app.Projects.AddNote(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, p)
}

func (app *App) createTaskHandler(c *gin.Context) {
	var req repos.CreateTaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "missing title")
		return
	}
	t, err := app.Tasks.Create(c.Request.Context(), req)
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, t)
}

func (app *App) listTasksHandler(c *gin.Context) {
	tasks, err := app.Tasks.List(c.Request.Context(), c.Query("user"))
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, tasks)
}

func (app *App) toggleTaskHandler(c *gin.Context) {
	t, err := app.Tasks.ToggleDone(c.Request.Context(), c.Param("id"))
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, t)
}

func (app *App) recordEarningHandler(c *gin.Context) {
	var req struct {
		User   string `json:"user"`
		Amount any    `json:"amount"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "amount")
		return
	}
	e, err := app.Earnings.Record(c.Request.Context(), req.User, req.Amount, req.Note)
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, e)
}

func (app *App) earningsSummaryHandler(c *gin.Context) {
	s, err := app.Earnings.Summary(c.Request.Context(), c.Query("user"))
	if err != nil {
		app.fail(c, err)
		return
	}
	respondOK(c, s)
}

// spaFallback serves files from webRoot and falls back to the entry page so
// client-side routes resolve on reload. API misses keep the JSON envelope.
func spaFallback(webRoot string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			respondErr(c, http.StatusNotFound, "not found")
			return
		}
		p := filepath.Join(webRoot, filepath.Clean("/"+c.Request.URL.Path))
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			c.File(p)
			return
		}
		c.File(filepath.Join(webRoot, "index.html"))
	}
}
