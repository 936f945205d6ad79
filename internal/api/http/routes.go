package httpapi

import (
	"errors"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/wash-advisor/internal/forecast"
	"github.com/i474232898/wash-advisor/internal/log"
	"github.com/i474232898/wash-advisor/internal/timezone"
	"github.com/i474232898/wash-advisor/internal/wash"
)

var validate = validator.New()

// UnknownLocation names a forecast whose document carries no city.
const UnknownLocation = "Неизвестно"

// Advisor bundles what the handlers need to answer requests.
type Advisor struct {
	composer  *wash.Composer
	converter *timezone.Converter
	resolver  timezone.Resolver

	// now supplies the default month when the caller sends none.
	now func() time.Time
}

// NewAdvisor creates an Advisor. resolver should be the same one conv localizes with.
func NewAdvisor(composer *wash.Composer, conv *timezone.Converter, resolver timezone.Resolver) *Advisor {
	return &Advisor{
		composer:  composer,
		converter: conv,
		resolver:  resolver,
		now:       time.Now,
	}
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, advisor *Advisor, middleware ...fiber.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "wash-advisor",
		})
	})

	v1 := app.Group("/api/v1", middleware...)

	v1.Post("/recommendation", advisor.recommendation)
	v1.Get("/timezone", advisor.lookupZone)
	v1.Post("/intervals", advisor.intervals)
}

// recommendationQuery holds query parameters for the recommendation endpoint.
type recommendationQuery struct {
	Lat    *float64 `query:"lat" validate:"required,min=-90,max=90"`
	Lon    *float64 `query:"lon" validate:"required,min=-180,max=180"`
	Month  int      `query:"month" validate:"omitempty,min=1,max=12"`
	Format string   `query:"format" validate:"omitempty,oneof=json msgpack"`
}

type recommendationResponse struct {
	ID        string       `json:"id"`
	Verdict   wash.Verdict `json:"verdict"`
	Mode      wash.Mode    `json:"seasonMode"`
	Branch    wash.Branch  `json:"branch"`
	Narrative string       `json:"narrative"`
	Location  string       `json:"location"`
	Facts     wash.Facts   `json:"facts"`
}

func (a *Advisor) recommendation(c *fiber.Ctx) error {
	var q recommendationQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	fc, err := forecast.Parse(c.Body())
	if err != nil {
		if errors.Is(err, forecast.ErrMalformedInput) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	month := time.Month(q.Month)
	if month == 0 {
		month = a.now().UTC().Month()
	}
	coord := forecast.Coordinate{Lat: *q.Lat, Lon: *q.Lon}

	rec, err := a.composer.Compose(fc.Series, coord, month)
	if err != nil {
		if errors.Is(err, forecast.ErrMalformedInput) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		log.Errorw("compose recommendation", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compose recommendation")
	}

	location := fc.City
	if location == "" {
		location = UnknownLocation
	}

	resp := recommendationResponse{
		ID:        uuid.NewString(),
		Verdict:   rec.Verdict,
		Mode:      rec.Mode,
		Branch:    rec.Branch,
		Narrative: rec.Narrative,
		Location:  location,
		Facts:     rec.Facts,
	}
	log.Infow("recommendation composed",
		"id", resp.ID,
		"verdict", resp.Verdict,
		"branch", resp.Branch,
		"points", len(fc.Series),
	)

	return writeResponse(c, q.Format, resp)
}

// coordQuery holds query parameters identifying a point on the map.
type coordQuery struct {
	Lat *float64 `query:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `query:"lon" validate:"required,min=-180,max=180"`
}

func (a *Advisor) lookupZone(c *fiber.Ctx) error {
	var q coordQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	zone, ok := a.resolver.Resolve(*q.Lat, *q.Lon)
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, a.converter.Fallback())
	}

	return c.JSON(fiber.Map{
		"lat":  *q.Lat,
		"lon":  *q.Lon,
		"zone": zone,
	})
}

// intervalsRequest is the body of the intervals endpoint. Timestamps are UTC
// "2006-01-02 15:04:05" strings as found in forecast documents.
type intervalsRequest struct {
	Timestamps []string `json:"timestamps" validate:"required,min=1,dive,required"`
	Lat        *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon        *float64 `json:"lon" validate:"required,min=-180,max=180"`
}

func (a *Advisor) intervals(c *fiber.Ctx) error {
	var req intervalsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	times := make([]time.Time, 0, len(req.Timestamps))
	for _, s := range req.Timestamps {
		t, err := forecast.ParseTimestamp(s)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	coord := forecast.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
	loc, ok := a.converter.Location(coord)
	if !ok {
		return c.JSON(fiber.Map{"intervals": []string{a.converter.Fallback()}})
	}
	for i := range times {
		times[i] = times[i].In(loc)
	}

	return c.JSON(fiber.Map{
		"zone":      loc.String(),
		"intervals": a.composer.Collapser().Collapse(times),
	})
}

func bindQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
