package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	_ "github.com/Astemirdum/library-resource/library/docs"
	"github.com/Astemirdum/library-resource/library/internal/errs"
	"github.com/Astemirdum/library-resource/library/internal/model"
	"github.com/Astemirdum/library-resource/pkg/alert"
	md "github.com/Astemirdum/library-resource/pkg/middleware"
	"github.com/Astemirdum/library-resource/pkg/pagination"
	"github.com/Astemirdum/library-resource/pkg/validate"
)

const (
	entityName    = "library"
	basePath      = "/api/v1"
	librariesPath = "/libraries"
)

type Handler struct {
	librarySvc LibraryService
	log        *zap.Logger
}

func New(librarySvc LibraryService, log *zap.Logger) *Handler {
	return &Handler{
		librarySvc: librarySvc,
		log:        log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	metrics := md.NewMetrics("library")

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
		ExposeHeaders: append([]string{
			echo.HeaderLocation,
			pagination.HeaderLink,
			pagination.HeaderTotalCount,
		}, alert.Exposed()...),
	}))
	e.Use(metrics.Middleware())

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/manage/metrics", metrics.Handler())
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group(basePath,
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)
	h.Register(api)

	return e
}

// Register mounts the library resource on g.
func (h *Handler) Register(g *echo.Group) {
	g.POST(librariesPath, h.CreateLibrary)
	g.PUT(librariesPath, h.UpdateLibrary)
	g.GET(librariesPath, h.GetLibraries)
	g.GET(librariesPath+"/:id", h.GetLibrary)
	g.DELETE(librariesPath+"/:id", h.DeleteLibrary)
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// CreateLibrary godoc
// @Summary      Create a new library
// @Tags         libraries
// @Accept       json
// @Produce      json
// @Param        library  body      model.Library  true  "library without id"
// @Success      201      {object}  model.Library
// @Failure      400      {object}  echo.HTTPError
// @Router       /libraries [post]
func (h *Handler) CreateLibrary(c echo.Context) error {
	var lib model.Library
	if err := c.Bind(&lib); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.log.Debug("REST request to save Library", zap.Any("library", lib))
	return h.create(c, lib)
}

// UpdateLibrary godoc
// @Summary      Update an existing library
// @Description  A library without id is created instead.
// @Tags         libraries
// @Accept       json
// @Produce      json
// @Param        library  body      model.Library  true  "library"
// @Success      200      {object}  model.Library
// @Success      201      {object}  model.Library
// @Failure      400      {object}  echo.HTTPError
// @Router       /libraries [put]
func (h *Handler) UpdateLibrary(c echo.Context) error {
	var lib model.Library
	if err := c.Bind(&lib); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	h.log.Debug("REST request to update Library", zap.Any("library", lib))
	if !lib.HasID() {
		return h.create(c, lib)
	}
	if err := h.validate(c, lib); err != nil {
		return err
	}

	res, err := h.librarySvc.Save(c.Request().Context(), lib)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	copyHeaders(c.Response().Header(), alert.Entity(entityName, alert.Updated, lib.IDString()))
	return c.JSON(http.StatusOK, res)
}

// GetLibraries godoc
// @Summary      Get a page of libraries
// @Tags         libraries
// @Produce      json
// @Param        page  query     int     false  "zero-based page index"
// @Param        size  query     int     false  "page size"
// @Param        sort  query     string  false  "property,asc|desc"
// @Success      200   {array}   model.Library
// @Failure      400   {object}  echo.HTTPError
// @Router       /libraries [get]
func (h *Handler) GetLibraries(c echo.Context) error {
	h.log.Debug("REST request to get a page of Libraries")
	p, err := pagination.ParseQuery(c.QueryParams(), model.SortProperties)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	page, err := h.librarySvc.FindAll(c.Request().Context(), p)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	body, headers := pagination.Build(page.Items, page.TotalElements, p, basePath+librariesPath)
	copyHeaders(c.Response().Header(), headers)
	return c.JSON(http.StatusOK, body)
}

// GetLibrary godoc
// @Summary      Get a library by id
// @Tags         libraries
// @Produce      json
// @Param        id   path      int  true  "library id"
// @Success      200  {object}  model.Library
// @Failure      400  {object}  echo.HTTPError
// @Failure      404
// @Router       /libraries/{id} [get]
func (h *Handler) GetLibrary(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	h.log.Debug("REST request to get Library", zap.Int64("id", id))

	lib, err := h.librarySvc.FindOne(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, lib)
}

// DeleteLibrary godoc
// @Summary      Delete a library
// @Tags         libraries
// @Param        id   path  int  true  "library id"
// @Success      200
// @Failure      400  {object}  echo.HTTPError
// @Router       /libraries/{id} [delete]
func (h *Handler) DeleteLibrary(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	h.log.Debug("REST request to delete Library", zap.Int64("id", id))

	if err := h.librarySvc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	copyHeaders(c.Response().Header(), alert.Entity(entityName, alert.Deleted, strconv.FormatInt(id, 10)))
	return c.NoContent(http.StatusOK)
}

func (h *Handler) create(c echo.Context, lib model.Library) error {
	if lib.HasID() {
		copyHeaders(c.Response().Header(), alert.Failure(entityName, errs.KeyIDExists))
		return echo.NewHTTPError(http.StatusBadRequest, errs.ErrIDExists.Error())
	}
	if err := h.validate(c, lib); err != nil {
		return err
	}

	res, err := h.librarySvc.Save(c.Request().Context(), lib)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	id := res.IDString()
	c.Response().Header().Set(echo.HeaderLocation, basePath+librariesPath+"/"+id)
	copyHeaders(c.Response().Header(), alert.Entity(entityName, alert.Created, id))
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) validate(c echo.Context, lib model.Library) error {
	if err := c.Validate(lib); err != nil {
		copyHeaders(c.Response().Header(), alert.Failure(entityName, errs.KeyValidation))
		var resp errs.ValidationErrorResponse
		resp.Message = "validation failed"
		resp.Errors.AdditionalProperties = err.Error()
		return echo.NewHTTPError(http.StatusBadRequest, resp)
	}
	return nil
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errs.ErrInvalidID.Error())
	}
	return id, nil
}

func copyHeaders(dst, src http.Header) {
	for k, vv := range src {
		for _, v := range vv {
			dst.Add(k, v)
		}
	}
}
