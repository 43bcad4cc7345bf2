package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Task is the console tool's in-memory record. IDs are sequential and
// never reused within a run; nothing is persisted.
type Task struct {
	ID          int
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
}

func (t *Task) StatusMark() string {
	if t.Completed {
		return "✓"
	}
	return "✗"
}

var (
	errNotFound   = errors.New("task not found")
	errEmptyTitle = errors.New("title cannot be empty")
	errLongTitle  = errors.New("title exceeds maximum length of 200")
	errLongDesc   = errors.New("description exceeds maximum length of 1000")
)

// TaskStore holds tasks for the lifetime of the process.
type TaskStore struct {
	tasks  map[int]*Task
	nextID int
}

func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[int]*Task), nextID: 1}
}

func (s *TaskStore) Add(title, description string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errEmptyTitle
	}
	if len(title) > 200 {
		return nil, errLongTitle
	}
	if len(description) > 1000 {
		return nil, errLongDesc
	}

	task := &Task{
		ID:          s.nextID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
	s.tasks[task.ID] = task
	s.nextID++
	return task, nil
}

func (s *TaskStore) Get(id int) (*Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, errNotFound
	}
	return task, nil
}

// All returns tasks oldest first.
func (s *TaskStore) All() []*Task {
	all := make([]*Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		all = append(all, task)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (s *TaskStore) Update(id int, title, description *string) error {
	task, ok := s.tasks[id]
	if !ok {
		return errNotFound
	}
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return errEmptyTitle
		}
		if len(trimmed) > 200 {
			return errLongTitle
		}
		task.Title = trimmed
	}
	if description != nil {
		if len(*description) > 1000 {
			return errLongDesc
		}
		task.Description = *description
	}
	return nil
}

func (s *TaskStore) Delete(id int) error {
	if _, ok := s.tasks[id]; !ok {
		return errNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *TaskStore) SetCompleted(id int, completed bool) (*Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, errNotFound
	}
	task.Completed = completed
	return task, nil
}

func (s *TaskStore) Counts() (total, completed, pending int) {
	total = len(s.tasks)
	for _, task := range s.tasks {
		if task.Completed {
			completed++
		}
	}
	return total, completed, total - completed
}

// Console drives the interactive loop.
type Console struct {
	store *TaskStore
	in    *bufio.Scanner
}

func main() {
	console := &Console{
		store: NewTaskStore(),
		in:    bufio.NewScanner(os.Stdin),
	}
	console.Run()
}

func (a *Console) Run() {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("         Todo Console")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("\nType 'help' for available commands")

	for {
		fmt.Print("\n> ")
		if !a.in.Scan() {
			fmt.Println("\nGoodbye!")
			return
		}
		command := strings.ToLower(strings.TrimSpace(a.in.Text()))
		if command == "" {
			continue
		}

		switch command {
		case "add", "a", "new":
			a.cmdAdd()
		case "list", "l", "ls", "show":
			a.cmdList()
		case "view", "v", "detail":
			a.cmdView()
		case "update", "u", "edit":
			a.cmdUpdate()
		case "delete", "d", "remove", "rm":
			a.cmdDelete()
		case "complete", "c", "done":
			a.cmdSetCompleted(true)
		case "incomplete", "ic", "undone", "pending":
			a.cmdSetCompleted(false)
		case "help", "h", "?":
			a.cmdHelp()
		case "exit", "quit", "q":
			fmt.Println("\nGoodbye!")
			return
		default:
			fmt.Printf("Unknown command: %s\n", command)
			fmt.Println("Type 'help' for available commands")
		}
	}
}

func (a *Console) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *Console) promptID() (int, bool) {
	raw := a.prompt("\nEnter task ID: ")
	id, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Println("\nInvalid input: please enter a number")
		return 0, false
	}
	return id, true
}

func (a *Console) cmdAdd() {
	fmt.Println("\n--- Add New Task ---")
	title := a.prompt("Enter task title: ")
	description := a.prompt("Enter task description (optional): ")

	task, err := a.store.Add(title, description)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}

	fmt.Println("\nTask added successfully!")
	fmt.Printf("  ID: %d\n", task.ID)
	fmt.Printf("  Title: %s\n", task.Title)
	fmt.Println("  Status: Pending")
}

func (a *Console) cmdList() {
	tasks := a.store.All()
	if len(tasks) == 0 {
		fmt.Println("\nYour todo list is empty!")
		fmt.Println("Use 'add' to create your first task")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("         Your Todo List")
	fmt.Println(strings.Repeat("=", 50))
	for _, task := range tasks {
		fmt.Printf("\n[%d] [%s] %s\n", task.ID, task.StatusMark(), task.Title)
	}

	total, completed, pending := a.store.Counts()
	fmt.Println("\n" + strings.Repeat("-", 50))
	fmt.Printf("Total: %d tasks (%d completed, %d pending)\n", total, completed, pending)
}

func (a *Console) cmdView() {
	id, ok := a.promptID()
	if !ok {
		return
	}
	task, err := a.store.Get(id)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}

	status := "Pending"
	if task.Completed {
		status = "Completed"
	}
	description := task.Description
	if description == "" {
		description = "(none)"
	}

	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Printf("Task #%d\n", task.ID)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Title:       %s\n", task.Title)
	fmt.Printf("Description: %s\n", description)
	fmt.Printf("Status:      %s\n", status)
	fmt.Printf("Created:     %s\n", task.CreatedAt.Format("2006-01-02 15:04:05"))
}

func (a *Console) cmdUpdate() {
	id, ok := a.promptID()
	if !ok {
		return
	}
	task, err := a.store.Get(id)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}

	fmt.Printf("\nCurrent title: %s\n", task.Title)
	newTitle := a.prompt("Enter new title (or press Enter to keep current): ")

	current := task.Description
	if current == "" {
		current = "(none)"
	}
	fmt.Printf("Current description: %s\n", current)
	newDesc := a.prompt("Enter new description (or press Enter to keep current): ")

	var titlePtr, descPtr *string
	if newTitle != "" {
		titlePtr = &newTitle
	}
	if newDesc != "" {
		descPtr = &newDesc
	}

	if err := a.store.Update(id, titlePtr, descPtr); err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}
	fmt.Println("\nTask updated successfully!")
}

func (a *Console) cmdDelete() {
	id, ok := a.promptID()
	if !ok {
		return
	}
	task, err := a.store.Get(id)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}

	confirm := strings.ToLower(a.prompt(fmt.Sprintf("Are you sure you want to delete %q? (y/n): ", task.Title)))
	if confirm != "y" {
		fmt.Println("\nDeletion cancelled")
		return
	}

	if err := a.store.Delete(id); err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}
	fmt.Println("\nTask deleted successfully!")
}

func (a *Console) cmdSetCompleted(completed bool) {
	id, ok := a.promptID()
	if !ok {
		return
	}
	task, err := a.store.SetCompleted(id, completed)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}

	status := "pending"
	if task.Completed {
		status = "completed"
	}
	fmt.Printf("\nTask marked as %s!\n", status)
}

func (a *Console) cmdHelp() {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("         Available Commands")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("\n  add        - Add a new task")
	fmt.Println("  list       - View all tasks")
	fmt.Println("  view       - View task details")
	fmt.Println("  update     - Update a task")
	fmt.Println("  delete     - Delete a task")
	fmt.Println("  complete   - Mark task as complete")
	fmt.Println("  incomplete - Mark task as incomplete")
	fmt.Println("  help       - Show this help message")
	fmt.Println("  exit       - Exit application")
	fmt.Println("\n" + strings.Repeat("-", 50))
	fmt.Println("  Aliases: add/a/new, list/l/ls, view/v,")
	fmt.Println("           update/u/edit, delete/d/rm,")
	fmt.Println("           complete/c/done, incomplete/ic")
}
