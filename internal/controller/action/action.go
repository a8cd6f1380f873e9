// Package action описывает данные inline кнопок: закрытый набор действий,
// которые кодируются в callback_data и разбираются один раз на входе в бота.
package action

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/swim_bot/internal/model"
)

// MaxDataLen ограничение Telegram на размер callback_data
const MaxDataLen = 64

// ErrUnknown callback_data не относится ни к одному действию
var ErrUnknown = errors.New("unknown callback action")

type Kind string

const (
	KindPickDate       Kind = "d"  // d:20251020
	KindPickTime       Kind = "t"  // t:20251020:0900
	KindBackToDates    Kind = "bd" // вернуться к выбору дня
	KindOccupied       Kind = "oc" // нажатие на занятое окно
	KindCancelSession  Kind = "cs" // cs:123
	KindDismiss        Kind = "x"  // закрыть сообщение
	KindTutorialStyle  Kind = "tu" // tu:butterfly
	KindListTemplates  Kind = "lt"
	KindAddTemplate    Kind = "at" // выбор дня недели для нового окна
	KindAddTemplateDay Kind = "ad" // ad:1
	KindToggleTemplate Kind = "tt" // tt:5
	KindDeleteTemplate Kind = "dt" // dt:5
	KindPendingMarks   Kind = "pm" // прошедшие тренировки без отметки
	KindMarkSession    Kind = "ms" // ms:123:c
)

const (
	dateLayout = "20060102"
	timeLayout = "1504"
)

// Action разобранное действие кнопки. Заполнены только поля, нужные Kind.
type Action struct {
	Kind    Kind
	Date    time.Time       // PickDate, PickTime: полночь даты в часовом поясе тренера
	Time    model.ClockTime // PickTime
	ID      int64           // CancelSession, ToggleTemplate, DeleteTemplate, MarkSession
	Weekday time.Weekday    // AddTemplateDay
	Style   model.SwimStyle // TutorialStyle
	Status  model.SessionStatus
}

func PickDate(date time.Time) Action {
	return Action{Kind: KindPickDate, Date: date}
}

func PickTime(date time.Time, at model.ClockTime) Action {
	return Action{Kind: KindPickTime, Date: date, Time: at}
}

func BackToDates() Action { return Action{Kind: KindBackToDates} }

func Occupied() Action { return Action{Kind: KindOccupied} }

func CancelSession(id int64) Action {
	return Action{Kind: KindCancelSession, ID: id}
}

func Dismiss() Action { return Action{Kind: KindDismiss} }

func TutorialStyle(style model.SwimStyle) Action {
	return Action{Kind: KindTutorialStyle, Style: style}
}

func ListTemplates() Action { return Action{Kind: KindListTemplates} }

func AddTemplate() Action { return Action{Kind: KindAddTemplate} }

func AddTemplateDay(weekday time.Weekday) Action {
	return Action{Kind: KindAddTemplateDay, Weekday: weekday}
}

func ToggleTemplate(id int64) Action {
	return Action{Kind: KindToggleTemplate, ID: id}
}

func DeleteTemplate(id int64) Action {
	return Action{Kind: KindDeleteTemplate, ID: id}
}

func PendingMarks() Action { return Action{Kind: KindPendingMarks} }

// MarkSession отметка тренировки: status completed или missed
func MarkSession(id int64, status model.SessionStatus) Action {
	return Action{Kind: KindMarkSession, ID: id, Status: status}
}

// StartsAt точный момент выбранного окна для PickTime
func (a Action) StartsAt(loc *time.Location) time.Time {
	return a.Time.On(a.Date, loc)
}

// Encode упаковывает действие в callback_data
func (a Action) Encode() string {
	switch a.Kind {
	case KindPickDate:
		return join(a.Kind, a.Date.Format(dateLayout))
	case KindPickTime:
		return join(a.Kind, a.Date.Format(dateLayout), fmt.Sprintf("%02d%02d", a.Time.Hour, a.Time.Minute))
	case KindCancelSession, KindToggleTemplate, KindDeleteTemplate:
		return join(a.Kind, strconv.FormatInt(a.ID, 10))
	case KindAddTemplateDay:
		return join(a.Kind, strconv.Itoa(int(a.Weekday)))
	case KindTutorialStyle:
		return join(a.Kind, string(a.Style))
	case KindMarkSession:
		return join(a.Kind, strconv.FormatInt(a.ID, 10), statusCode(a.Status))
	default:
		return string(a.Kind)
	}
}

// Decode разбирает callback_data. Даты интерпретируются в часовом поясе loc.
func Decode(data string, loc *time.Location) (Action, error) {
	if len(data) == 0 || len(data) > MaxDataLen {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknown, data)
	}

	parts := strings.Split(data, ":")
	kind := Kind(parts[0])
	args := parts[1:]

	bad := func(err error) (Action, error) {
		if err == nil {
			err = ErrUnknown
		}
		return Action{}, fmt.Errorf("decode %q: %w", data, errors.Join(ErrUnknown, err))
	}

	switch kind {
	case KindBackToDates, KindOccupied, KindDismiss, KindListTemplates, KindAddTemplate, KindPendingMarks:
		if len(args) != 0 {
			return bad(nil)
		}
		return Action{Kind: kind}, nil

	case KindPickDate:
		if len(args) != 1 {
			return bad(nil)
		}
		date, err := time.ParseInLocation(dateLayout, args[0], loc)
		if err != nil {
			return bad(err)
		}
		return PickDate(date), nil

	case KindPickTime:
		if len(args) != 2 {
			return bad(nil)
		}
		date, err := time.ParseInLocation(dateLayout, args[0], loc)
		if err != nil {
			return bad(err)
		}
		at, err := time.Parse(timeLayout, args[1])
		if err != nil {
			return bad(err)
		}
		return PickTime(date, model.ClockTimeOf(at)), nil

	case KindCancelSession, KindToggleTemplate, KindDeleteTemplate:
		if len(args) != 1 {
			return bad(nil)
		}
		id, err := parseID(args[0])
		if err != nil {
			return bad(err)
		}
		return Action{Kind: kind, ID: id}, nil

	case KindAddTemplateDay:
		if len(args) != 1 {
			return bad(nil)
		}
		day, err := strconv.Atoi(args[0])
		if err != nil || day < int(time.Sunday) || day > int(time.Saturday) {
			return bad(err)
		}
		return AddTemplateDay(time.Weekday(day)), nil

	case KindTutorialStyle:
		if len(args) != 1 || !model.SwimStyle(args[0]).Valid() {
			return bad(nil)
		}
		return TutorialStyle(model.SwimStyle(args[0])), nil

	case KindMarkSession:
		if len(args) != 2 {
			return bad(nil)
		}
		id, err := parseID(args[0])
		if err != nil {
			return bad(err)
		}
		status, ok := statusFromCode(args[1])
		if !ok {
			return bad(nil)
		}
		return MarkSession(id, status), nil
	}

	return Action{}, fmt.Errorf("%w: %q", ErrUnknown, data)
}

func join(kind Kind, args ...string) string {
	return string(kind) + ":" + strings.Join(args, ":")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive, got %d", id)
	}
	return id, nil
}

func statusCode(status model.SessionStatus) string {
	switch status {
	case model.SessionStatusCompleted:
		return "c"
	case model.SessionStatusMissed:
		return "m"
	default:
		return "?"
	}
}

func statusFromCode(code string) (model.SessionStatus, bool) {
	switch code {
	case "c":
		return model.SessionStatusCompleted, true
	case "m":
		return model.SessionStatusMissed, true
	default:
		return "", false
	}
}
