package render

import (
	"bytes"
	"image/color"
	"strconv"
	"sync"
	"time"

	"github.com/Freeeeeet/taskhire_bot/internal/model"
	"github.com/Freeeeeet/taskhire_bot/internal/timeslot"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 900
	imageHeight      = 1000
	headerHeight     = 110
	leftLabelsWidth  = 80
	legendWidth      = 200
	slotPaddingX     = 12
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
)

// Константы шрифтов
const (
	titleFontSize      = 28.0
	subtitleFontSize   = 18.0
	hourLabelFontSize  = 16.0
	slotTimeFontSize   = 16.0
	legendItemFontSize = 13.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	dayColor         = color.RGBA{235, 236, 238, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	slotPendingColor  = color.RGBA{255, 214, 102, 230}
	slotAcceptedColor = color.RGBA{133, 193, 85, 220}
	slotCurrentColor  = color.RGBA{91, 155, 213, 230}
	slotPaymentColor  = color.RGBA{255, 182, 193, 255}
	slotDoneColor     = color.RGBA{158, 158, 158, 200}
	slotDefaultColor  = color.RGBA{220, 220, 220, 200}
	slotTextColor     = color.RGBA{20, 24, 28, 230}
	slotShadowColor   = color.RGBA{0, 0, 0, 20}

	legendItemColor = color.RGBA{70, 74, 78, 220}
)

// legendItems порядок и подписи статусов в легенде
var legendItems = []struct {
	Status model.BookingStatus
	Label  string
}{
	{model.BookingStatusPending, "Ожидает ответа"},
	{model.BookingStatusAccepted, "Принято"},
	{model.BookingStatusCurrent, "Идёт работа"},
	{model.BookingStatusPaymentPending, "Ждёт оплаты"},
	{model.BookingStatusCompleted, "Оплачено"},
}

// layout геометрия колонки дня
type layout struct {
	bounds     timeslot.Bounds
	top        float64
	left       float64
	width      float64
	height     float64
	pxByMinute float64
}

func newLayout(bounds timeslot.Bounds) layout {
	height := float64(imageHeight - headerHeight - 20)
	return layout{
		bounds:     bounds,
		top:        float64(headerHeight),
		left:       float64(leftLabelsWidth),
		width:      float64(imageWidth - leftLabelsWidth - legendWidth),
		height:     height,
		pxByMinute: height / float64(bounds.Close.Minutes()-bounds.Open.Minutes()),
	}
}

// y координата момента времени внутри колонки
func (l layout) y(t timeslot.TimeOfDay) float64 {
	return l.top + float64(t.Minutes()-l.bounds.Open.Minutes())*l.pxByMinute
}

// slotRect прямоугольник слота: x, y, ширина, высота
func (l layout) slotRect(s timeslot.Slot) (float64, float64, float64, float64) {
	y := l.y(s.Start)
	h := float64(s.Duration()) * l.pxByMinute
	if h < minSlotHeight {
		h = minSlotHeight
	}
	return l.left + slotPaddingX, y + 2, l.width - slotPaddingX*2, h - 4
}

var (
	fontsOnce   sync.Once
	parsedFonts map[FontStyle]*opentype.Font
)

// loadFont загружает шрифт указанного стиля или использует basicfont как fallback
func loadFont(dc *gg.Context, size float64, style ...FontStyle) {
	fontsOnce.Do(func() {
		parsedFonts = make(map[FontStyle]*opentype.Font)
		if f, err := opentype.Parse(goregular.TTF); err == nil {
			parsedFonts[FontStyleDefault] = f
		}
		if f, err := opentype.Parse(gobold.TTF); err == nil {
			parsedFonts[FontStyleBold] = f
		}
	})

	fontStyle := FontStyleDefault
	if len(style) > 0 {
		fontStyle = style[0]
	}

	parsed, ok := parsedFonts[fontStyle]
	if !ok {
		parsed, ok = parsedFonts[FontStyleDefault]
	}

	if ok {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}

	dc.SetFontFace(basicfont.Face7x13)
}

// AgendaImage рисует расписание исполнителя на один день.
// now нужен для линии текущего времени, она рисуется только для сегодняшней даты.
func AgendaImage(date time.Time, agenda []*model.Booking, bounds timeslot.Bounds, now time.Time) ([]byte, error) {
	l := newLayout(bounds)

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	drawHeader(dc, date, len(agenda))

	dc.SetColor(dayColor)
	dc.DrawRectangle(l.left, l.top, l.width, l.height)
	dc.Fill()

	drawHourLines(dc, l)
	for _, b := range agenda {
		for _, s := range b.Slots {
			drawSlot(dc, l, b, s)
		}
	}

	if model.DateOnly(date).Equal(model.DateOnly(now)) {
		drawCurrentTimeLine(dc, l, timeslot.FromMinutes(now.Hour()*60+now.Minute()))
	}

	drawLegend(dc)

	return encodeImage(dc)
}

// drawHeader рисует дату и количество заявок
func drawHeader(dc *gg.Context, date time.Time, count int) {
	title := strconv.Itoa(date.Day()) + " " + monthGenitive(date.Month()) + " " + strconv.Itoa(date.Year())

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(leftLabelsWidth), float64(headerHeight)/3, 0, 0.5)

	subtitle := weekdayRussian(date.Weekday()) + ", заявок: " + strconv.Itoa(count)
	loadFont(dc, subtitleFontSize)
	dc.DrawStringAnchored(subtitle, float64(leftLabelsWidth), float64(headerHeight)*2/3, 0, 0.5)
}

// drawHourLines рисует линии и подписи каждого часа рабочего дня
func drawHourLines(dc *gg.Context, l layout) {
	loadFont(dc, hourLabelFontSize)

	first := l.bounds.Open.CeilHour()
	for t := first; t <= l.bounds.Close; t += 60 {
		y := l.y(t)

		dc.SetLineWidth(0.3)
		dc.SetColor(hourLineColor)
		dc.DrawLine(l.left, y, l.left+l.width, y)
		dc.Stroke()

		dc.SetColor(hourLabelColor)
		dc.DrawStringAnchored(t.String(), l.left-10, y, 1, 0.5)
	}
}

// drawSlot рисует один слот заявки
func drawSlot(dc *gg.Context, l layout, b *model.Booking, s timeslot.Slot) {
	x, y, w, h := l.slotRect(s)
	fillColor := statusColor(b.Status)

	// Тень
	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(x+shadowOffset, y+shadowOffset, w, h, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x, y, w, h, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, w, h, slotBorderRadius)
	dc.Stroke()

	if h < 18 {
		return
	}

	label := s.String() + "  #" + strconv.FormatInt(b.ID, 10)
	if b.Task != nil && b.Task.Title != "" {
		label += "  " + truncate(b.Task.Title, 30)
	}

	loadFont(dc, slotTimeFontSize)
	dc.SetColor(slotTextColor)
	dc.DrawStringAnchored(label, x+8, y+h/2, 0, 0.35)
}

// statusColor возвращает цвет слота по статусу заявки
func statusColor(status model.BookingStatus) color.RGBA {
	switch status {
	case model.BookingStatusPending:
		return slotPendingColor
	case model.BookingStatusAccepted:
		return slotAcceptedColor
	case model.BookingStatusCurrent:
		return slotCurrentColor
	case model.BookingStatusPaymentPending:
		return slotPaymentColor
	case model.BookingStatusCompleted:
		return slotDoneColor
	default:
		return slotDefaultColor
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawCurrentTimeLine рисует красную линию текущего времени
func drawCurrentTimeLine(dc *gg.Context, l layout, now timeslot.TimeOfDay) {
	if now < l.bounds.Open || now > l.bounds.Close {
		return
	}

	y := l.y(now)
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(l.left, y, l.left+l.width, y)
	dc.Stroke()
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context) {
	boxW := 20.0
	boxH := 14.0
	liX := float64(imageWidth-legendWidth) + 20
	liY := float64(headerHeight) + 10

	for _, item := range legendItems {
		dc.SetColor(statusColor(item.Status))
		dc.DrawRoundedRectangle(liX, liY, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, liX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, maxRunes int) string {
	r := []rune(s)
	if len(r) <= maxRunes {
		return s
	}
	return string(r[:maxRunes-1]) + "…"
}

func weekdayRussian(weekday time.Weekday) string {
	weekdays := map[time.Weekday]string{
		time.Monday:    "Понедельник",
		time.Tuesday:   "Вторник",
		time.Wednesday: "Среда",
		time.Thursday:  "Четверг",
		time.Friday:    "Пятница",
		time.Saturday:  "Суббота",
		time.Sunday:    "Воскресенье",
	}
	return weekdays[weekday]
}

// названия месяцев в родительном падеже
func monthGenitive(month time.Month) string {
	months := map[time.Month]string{
		time.January:   "января",
		time.February:  "февраля",
		time.March:     "марта",
		time.April:     "апреля",
		time.May:       "мая",
		time.June:      "июня",
		time.July:      "июля",
		time.August:    "августа",
		time.September: "сентября",
		time.October:   "октября",
		time.November:  "ноября",
		time.December:  "декабря",
	}
	return months[month]
}
