// Package api exposes the scheduling simulator over HTTP.
package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/report"
	"github.com/schedsim/schedsim/sim/workload"
)

// ScheduleRequest is the JSON body accepted by the scheduling endpoints.
// Omitted quantum and switch_time fall back to the handler defaults.
type ScheduleRequest struct {
	Processes  []workload.Descriptor `json:"processes"`
	Quantum    *int64                `json:"quantum"`
	SwitchTime *int64                `json:"switch_time"`
}

type SchedulerHandler interface {
	FirstComeFirstServe(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config sim.Config
}

func NewSchedulerHandlerImpl(config sim.Config) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{config: config}
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.schedule(ctx, []string{sim.NameFCFS})
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.schedule(ctx, []string{sim.NameRoundRobin})
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	return s.schedule(ctx, []string{sim.NameFCFS, sim.NameRoundRobin})
}

func (s *SchedulerHandlerImpl) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

// schedule runs the named disciplines over the request workload and replies
// with one report view per discipline.
func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, names []string) error {
	var request ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return badRequest(ctx, "invalid request format")
	}

	cfg := s.config
	if request.Quantum != nil {
		cfg.Quantum = *request.Quantum
	}
	if request.SwitchTime != nil {
		cfg.SwitchTime = *request.SwitchTime
	}

	procs, err := workload.ToProcesses(request.Processes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	reports, err := sim.RunDisciplines(procs, names, cfg)
	if err != nil {
		if isDomainError(err) {
			return badRequest(ctx, err.Error())
		}
		logrus.Errorf("Scheduling %v failed: %v", names, err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "can not process request"})
	}
	logrus.Debugf("Scheduled %d processes with %v", len(procs), names)
	return ctx.JSON(report.NewViews(reports))
}

func badRequest(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func isDomainError(err error) bool {
	return errors.Is(err, sim.ErrEmptyWorkload) ||
		errors.Is(err, sim.ErrInvalidQuantum) ||
		errors.Is(err, sim.ErrMalformedWorkload)
}
