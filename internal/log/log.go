package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

type entry struct {
	TS        string         `json:"ts"`
	Level     string         `json:"level"`
	Component string         `json:"component"`
	ReqID     string         `json:"req_id,omitempty"`
	IP        string         `json:"ip,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	Action    string         `json:"action,omitempty"`
	Status    int            `json:"status,omitempty"`
	Medium    string         `json:"medium,omitempty"`
	Mode      string         `json:"mode,omitempty"`
	Err       string         `json:"err,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func emit(e entry, err error) {
	e.TS = time.Now().UTC().Format(time.RFC3339)
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

// write emits a request-scoped line; c may be nil outside a request.
func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry{Level: level, Component: "http", Action: action, Fields: fields}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
	}
	emit(e, err)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("audit", c, action, nil, fields)
}
func Warn(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("warn", c, action, err, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}

// StoreEvent logs background store activity. Medium and mode are top-level
// so durable failures can be filtered without digging into fields.
type StoreEvent struct {
	Medium string
	Mode   string
}

func (s StoreEvent) line(level, action string, err error, fields map[string]any) {
	emit(entry{
		Level:     level,
		Component: "store",
		Action:    action,
		Medium:    s.Medium,
		Mode:      s.Mode,
		Fields:    fields,
	}, err)
}

func (s StoreEvent) Info(action string, fields map[string]any) { s.line("info", action, nil, fields) }
func (s StoreEvent) Warn(action string, err error, fields map[string]any) {
	s.line("warn", action, err, fields)
}
func (s StoreEvent) Error(action string, err error, fields map[string]any) {
	s.line("error", action, err, fields)
}
