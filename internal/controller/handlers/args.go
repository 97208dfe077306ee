package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
)

// commandArgs аргументы команды без самой команды
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

// commandTail текст после команды целиком
func commandTail(text string) string {
	text = strings.TrimSpace(text)
	_, tail, _ := strings.Cut(text, " ")
	return strings.TrimSpace(tail)
}

func parsePositiveID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseBookingID разбирает "<command> <id>"
func parseBookingID(command string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, usage(command + " <ID заявки>")
	}
	id, ok := parsePositiveID(args[0])
	if !ok {
		return 0, usage(command + " <ID заявки>")
	}
	return id, nil
}

// parseDate разбирает дату YYYY-MM-DD
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return model.DateOnly(d), nil
}

type hireArgs struct {
	workerID int64
	taskID   int64
	date     time.Time
	slots    []string
}

// parseHire разбирает "/hire <worker_id> <task_id> <YYYY-MM-DD> <slot>..."
func parseHire(args []string) (hireArgs, error) {
	if len(args) < 4 {
		return hireArgs{}, usage(usageHire)
	}

	workerID, ok := parsePositiveID(args[0])
	if !ok {
		return hireArgs{}, usage(usageHire)
	}

	taskID, ok := parsePositiveID(args[1])
	if !ok {
		return hireArgs{}, usage(usageHire)
	}

	date, err := parseDate(args[2])
	if err != nil {
		return hireArgs{}, err
	}

	return hireArgs{workerID: workerID, taskID: taskID, date: date, slots: args[3:]}, nil
}

// parseExtend разбирает "/extend <id> <hours>"
func parseExtend(args []string) (int64, int, error) {
	if len(args) != 2 {
		return 0, 0, usage(usageExtend)
	}

	id, ok := parsePositiveID(args[0])
	if !ok {
		return 0, 0, usage(usageExtend)
	}

	hours, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, usage(usageExtend)
	}

	return id, hours, nil
}

// parseAddSlot разбирает "/addslot <day> <slot>"
func parseAddSlot(args []string) (string, string, error) {
	if len(args) != 2 {
		return "", "", usage(usageAddSlot)
	}
	return args[0], args[1], nil
}

// parseRemoveSlot разбирает "/removeslot <day> <n>", n считается с единицы
func parseRemoveSlot(args []string) (string, int, error) {
	if len(args) != 2 {
		return "", 0, usage(usageRemoveSlot)
	}

	n, err := strconv.Atoi(args[1])
	if err != nil {
		return "", 0, usage(usageRemoveSlot)
	}

	return args[0], n - 1, nil
}

// parseAgendaDate дата из "/agenda [YYYY-MM-DD]", по умолчанию сегодня
func parseAgendaDate(args []string, now time.Time) (time.Time, error) {
	switch len(args) {
	case 0:
		return model.DateOnly(now), nil
	case 1:
		return parseDate(args[0])
	default:
		return time.Time{}, usage(usageAgenda)
	}
}
