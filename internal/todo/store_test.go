package todo

import (
	"errors"
	"reflect"
	"sort"
	"testing"
)

type recordingSaver struct {
	saves [][]Task
	err   error
}

func (r *recordingSaver) SaveTasks(tasks []Task) error {
	r.saves = append(r.saves, tasks)
	return r.err
}

func (r *recordingSaver) last() []Task {
	if len(r.saves) == 0 {
		return nil
	}
	return r.saves[len(r.saves)-1]
}

func seededStore() (*Store, *recordingSaver) {
	saver := &recordingSaver{}
	return NewStore(saver, DefaultTasks()), saver
}

func TestAddInsertsAtHead(t *testing.T) {
	s, saver := seededStore()

	task, err := s.Add("Buy milk")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if task == nil || task.ID != 7 {
		t.Fatalf("Add: got %+v, want id 7", task)
	}
	tasks := s.Tasks()
	if tasks[0].ID != 7 || tasks[0].Text != "Buy milk" || tasks[0].Completed {
		t.Errorf("tasks[0]: got %+v", tasks[0])
	}
	if got := ItemsLabel(s.ItemsLeft()); got != "6 items left" {
		t.Errorf("ItemsLabel: got %q, want %q", got, "6 items left")
	}
	if len(saver.saves) != 1 {
		t.Fatalf("saves: got %d, want 1", len(saver.saves))
	}
	if !reflect.DeepEqual(saver.last(), tasks) {
		t.Errorf("saved tasks differ from store")
	}
}

func TestAddTrimsText(t *testing.T) {
	s := NewStore(nil, nil)
	task, _ := s.Add("  walk the dog \n")
	if task.Text != "walk the dog" {
		t.Errorf("Text: got %q", task.Text)
	}
	if task.ID != 1 {
		t.Errorf("ID: got %d, want 1", task.ID)
	}
}

func TestAddBlankIsNoop(t *testing.T) {
	s, saver := seededStore()
	notified := 0
	s.Subscribe(func([]Task, int) { notified++ })

	for _, text := range []string{"", "   ", "\t\n"} {
		task, err := s.Add(text)
		if task != nil || err != nil {
			t.Errorf("Add(%q): got %v, %v", text, task, err)
		}
	}
	if s.Len() != 6 {
		t.Errorf("Len: got %d, want 6", s.Len())
	}
	if s.NextID() != 7 {
		t.Errorf("NextID: got %d, want 7", s.NextID())
	}
	if len(saver.saves) != 0 || notified != 0 {
		t.Errorf("no-op saved %d times, notified %d times", len(saver.saves), notified)
	}
}

func TestToggle(t *testing.T) {
	s, saver := seededStore()

	found, err := s.Toggle(2)
	if err != nil || !found {
		t.Fatalf("Toggle(2): got %v, %v", found, err)
	}
	if task, _ := s.Get(2); !task.Completed {
		t.Error("task 2 should be completed")
	}
	found, _ = s.Toggle(1)
	if !found {
		t.Fatal("Toggle(1) not found")
	}
	if task, _ := s.Get(1); task.Completed {
		t.Error("task 1 should be active")
	}
	if len(saver.saves) != 2 {
		t.Errorf("saves: got %d, want 2", len(saver.saves))
	}

	found, err = s.Toggle(99)
	if found || err != nil {
		t.Errorf("Toggle(99): got %v, %v", found, err)
	}
	if len(saver.saves) != 2 {
		t.Errorf("unknown id saved")
	}
}

func TestRemove(t *testing.T) {
	s, saver := seededStore()

	found, err := s.Remove(3)
	if err != nil || !found {
		t.Fatalf("Remove(3): got %v, %v", found, err)
	}
	if _, ok := s.Get(3); ok {
		t.Error("task 3 still present")
	}
	if want := []int{1, 2, 4, 5, 6}; !reflect.DeepEqual(IDs(s.Tasks()), want) {
		t.Errorf("ids: got %v, want %v", IDs(s.Tasks()), want)
	}

	found, _ = s.Remove(3)
	if found {
		t.Error("second Remove(3) reported found")
	}
	if len(saver.saves) != 1 {
		t.Errorf("saves: got %d, want 1", len(saver.saves))
	}
}

func TestToggleThenClearCompleted(t *testing.T) {
	s, _ := seededStore()

	if _, err := s.Toggle(2); err != nil {
		t.Fatal(err)
	}
	n, err := s.ClearCompleted()
	if err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}
	if n != 2 {
		t.Errorf("removed: got %d, want 2", n)
	}
	if want := []int{3, 4, 5, 6}; !reflect.DeepEqual(IDs(s.Tasks()), want) {
		t.Errorf("ids: got %v, want %v", IDs(s.Tasks()), want)
	}
}

func TestClearCompletedNoneIsNoop(t *testing.T) {
	s := NewStore(nil, []Task{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}})
	notified := false
	s.Subscribe(func([]Task, int) { notified = true })
	n, err := s.ClearCompleted()
	if n != 0 || err != nil || notified {
		t.Errorf("ClearCompleted: got %d, %v, notified=%v", n, err, notified)
	}
	if s.Len() != 2 {
		t.Errorf("Len: got %d, want 2", s.Len())
	}
}

func TestSetOrderFullPermutation(t *testing.T) {
	s, saver := seededStore()

	changed, err := s.SetOrder([]int{6, 1, 2, 3, 4, 5})
	if err != nil || !changed {
		t.Fatalf("SetOrder: got %v, %v", changed, err)
	}
	if want := []int{6, 1, 2, 3, 4, 5}; !reflect.DeepEqual(IDs(s.Tasks()), want) {
		t.Errorf("ids: got %v, want %v", IDs(s.Tasks()), want)
	}
	if want := []int{6, 1, 2, 3, 4, 5}; !reflect.DeepEqual(IDs(saver.last()), want) {
		t.Errorf("saved ids: got %v, want %v", IDs(saver.last()), want)
	}
}

func TestSetOrderUnchangedIsNoop(t *testing.T) {
	s, saver := seededStore()
	changed, err := s.SetOrder([]int{1, 2, 3, 4, 5, 6})
	if changed || err != nil {
		t.Errorf("SetOrder: got %v, %v", changed, err)
	}
	if len(saver.saves) != 0 {
		t.Errorf("saves: got %d, want 0", len(saver.saves))
	}
}

func TestSetOrderIsPermutation(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		want []int
	}{
		{"unknown ids dropped", []int{6, 99, 5, 4, 3, 2, 1}, []int{6, 5, 4, 3, 2, 1}},
		{"duplicates dropped", []int{2, 2, 1, 3, 4, 5, 6}, []int{2, 1, 3, 4, 5, 6}},
		{"partial keeps hidden slots", []int{6, 4, 2}, []int{1, 6, 3, 4, 5, 2}},
		{"empty", nil, []int{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := seededStore()
			before := IDs(s.Tasks())
			if _, err := s.SetOrder(tt.ids); err != nil {
				t.Fatal(err)
			}
			after := IDs(s.Tasks())
			if !reflect.DeepEqual(after, tt.want) {
				t.Errorf("ids: got %v, want %v", after, tt.want)
			}
			sort.Ints(before)
			sort.Ints(after)
			if !reflect.DeepEqual(before, after) {
				t.Errorf("id multiset changed: %v -> %v", before, after)
			}
		})
	}
}

func TestIDsStayUnique(t *testing.T) {
	s, _ := seededStore()
	maxSeen := 6
	ops := []func(){
		func() { s.Add("a") },
		func() { s.Remove(7) },
		func() { s.Add("b") },
		func() { s.Toggle(8) },
		func() { s.ClearCompleted() },
		func() { s.Add("c") },
		func() { s.Remove(2) },
		func() { s.Add("d") },
	}
	for i, op := range ops {
		op()
		seen := map[int]bool{}
		for _, task := range s.Tasks() {
			if seen[task.ID] {
				t.Fatalf("step %d: duplicate id %d", i, task.ID)
			}
			seen[task.ID] = true
			if task.ID > maxSeen {
				maxSeen = task.ID
			}
		}
		if s.NextID() <= maxSeen {
			t.Fatalf("step %d: NextID %d not above %d", i, s.NextID(), maxSeen)
		}
	}
	if s.NextID() != 11 {
		t.Errorf("NextID: got %d, want 11", s.NextID())
	}
}

func TestObserverSeesCount(t *testing.T) {
	s, _ := seededStore()
	var gotLeft, gotLen int
	s.Subscribe(func(tasks []Task, left int) {
		gotLen = len(tasks)
		gotLeft = left
	})
	s.Add("Buy milk")
	if gotLen != 7 || gotLeft != 6 {
		t.Errorf("observer: got len=%d left=%d, want 7 and 6", gotLen, gotLeft)
	}
}

func TestSaveErrorKeepsMutation(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	s := NewStore(saver, DefaultTasks())
	notified := false
	s.Subscribe(func([]Task, int) { notified = true })

	_, err := s.Add("x")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, saver.err) {
		t.Errorf("error chain: got %v", err)
	}
	if s.Len() != 7 || !notified {
		t.Errorf("mutation not applied: len=%d notified=%v", s.Len(), notified)
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	s, _ := seededStore()
	tasks := s.Tasks()
	tasks[0].Text = "mutated"
	if task, _ := s.Get(1); task.Text == "mutated" {
		t.Error("Tasks aliases store memory")
	}
}

func TestMoveTo(t *testing.T) {
	ids := []int{1, 2, 3, 4, 5, 6}
	tests := []struct {
		name  string
		id    int
		index int
		want  []int
	}{
		{"to front", 6, 0, []int{6, 1, 2, 3, 4, 5}},
		{"to end", 1, 5, []int{2, 3, 4, 5, 6, 1}},
		{"clamped high", 2, 100, []int{1, 3, 4, 5, 6, 2}},
		{"clamped low", 4, -3, []int{4, 1, 2, 3, 5, 6}},
		{"unknown", 9, 0, []int{1, 2, 3, 4, 5, 6}},
		{"same place", 3, 2, []int{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveTo(ids, tt.id, tt.index)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MoveTo(%d, %d): got %v, want %v", tt.id, tt.index, got, tt.want)
			}
		})
	}
	if !reflect.DeepEqual(ids, []int{1, 2, 3, 4, 5, 6}) {
		t.Errorf("MoveTo modified input: %v", ids)
	}
}
