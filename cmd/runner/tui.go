package runner

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rivo/tview"
	"github.com/santiago-labs/apphost/resource"
)

type tuiItem struct {
	name    string
	kind    string
	content *strings.Builder
}

type tui struct {
	// lock guards items. It is never held while waiting on the event loop.
	lock     sync.Mutex
	items    []*tuiItem
	byID     map[string]*tuiItem
	selected atomic.Int64

	list *tview.List
	main *tview.TextView
	app  *tview.Application

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
	stopped  chan struct{}
	stopOnce sync.Once
}

func NewTUI() ConsoleUI {
	app := tview.NewApplication()
	main := tview.NewTextView().SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft).SetScrollable(true).
		SetText("Starting...")

	return &tui{
		list:    tview.NewList(),
		app:     app,
		main:    main,
		byID:    make(map[string]*tuiItem),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (t *tui) Print(msg string, r resource.Resource) {
	t.lock.Lock()
	defer t.lock.Unlock()

	item, ok := t.byID[r.ID()]
	if !ok {
		item = &tuiItem{name: r.Name(), kind: r.Type(), content: &strings.Builder{}}
		t.byID[r.ID()] = item
		t.items = append(t.items, item)
	}
	item.content.WriteString(msg)
	if !strings.HasSuffix(msg, "\n") {
		item.content.WriteString("\n")
	}
}

func (t *tui) text(idx int) string {
	t.lock.Lock()
	defer t.lock.Unlock()
	if idx < 0 || idx >= len(t.items) {
		return ""
	}
	return t.items[idx].content.String()
}

// snapshot returns the items added since the first from entries and the text
// of the selected item.
func (t *tui) snapshot(from int) ([]tuiItem, string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	var added []tuiItem
	for i := from; i < len(t.items); i++ {
		added = append(added, tuiItem{name: t.items[i].name, kind: t.items[i].kind})
	}

	var selected string
	if idx := int(t.selected.Load()); idx >= 0 && idx < len(t.items) {
		selected = t.items[idx].content.String()
	}
	return added, selected
}

func (t *tui) Done() {
	t.doneOnce.Do(func() { close(t.done) })
}

func (t *tui) stop() {
	t.stopOnce.Do(func() { close(t.stopped) })
}

func (t *tui) Start() {
	t.list.AddItem("Quit", "Press to exit", 'q', func() {
		t.stop()
		t.app.Stop()
	})

	t.selected.Store(0)
	t.running.Store(true)
	go t.liveTextSetter()

	grid := tview.NewGrid().
		SetColumns(-1, -3).
		SetRows(-1).
		SetBorders(true)

	// Layout for screens wider than 100 cells.
	grid.AddItem(t.list, 0, 0, 1, 1, 0, 100, false).
		AddItem(t.main, 0, 1, 1, 1, 0, 100, false)

	err := t.app.SetRoot(grid, true).SetFocus(t.list).Run()
	t.stop()
	if err != nil {
		panic(err)
	}
}

func runeIndex(i int) rune {
	j := 0
	for r := 'a'; r <= 'p'; r++ {
		if j == i {
			return r
		}
		j++
	}

	return 'z'
}

// queue runs f on the event loop. It gives up once the app has stopped, so a
// closed console never blocks the caller.
func (t *tui) queue(f func()) bool {
	if !t.running.Load() {
		return false
	}

	queued := make(chan struct{})
	go func() {
		t.app.QueueUpdateDraw(f)
		close(queued)
	}()

	select {
	case <-queued:
		return true
	case <-t.stopped:
		return false
	}
}

// liveTextSetter adds new resources to the list and keeps the main view in
// sync with the selected one until Done is called or the app stops.
func (t *tui) liveTextSetter() {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	sent := 0
	for {
		select {
		case <-t.done:
		case <-t.stopped:
			return
		case <-ticker.C:
		}

		added, text := t.snapshot(sent)
		base := sent
		ok := t.queue(func() {
			for i, item := range added {
				idx := base + i
				t.list.AddItem(item.name, item.kind, runeIndex(idx), func() {
					t.selected.Store(int64(idx))
					t.main.SetText(tview.TranslateANSI(t.text(idx)))
				})
			}
			if translated := tview.TranslateANSI(text); text != "" && t.main.GetText(false) != translated {
				t.main.SetText(translated)
				t.main.ScrollToEnd()
			}
		})
		if !ok {
			return
		}
		sent = base + len(added)

		select {
		case <-t.done:
			// One last sync after the run finished, then idle until quit.
			<-t.stopped
			return
		default:
		}
	}
}
