package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"main/dto"
	"main/repository"
)

// The assistant's tool surface is a closed set; anything else is rejected
// rather than falling through to dynamic dispatch.
const (
	ToolAddTask      = "add_task"
	ToolListTasks    = "list_tasks"
	ToolCompleteTask = "complete_task"
	ToolUpdateTask   = "update_task"
	ToolDeleteTask   = "delete_task"
)

var ErrUnknownTool = errors.New("unknown tool")

// Typed argument records, one per tool variant. The acting user is never
// part of the arguments: it is injected from the verified token.
type AddTaskArgs struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type ListTasksArgs struct {
	Status string `json:"status,omitempty"` // all, pending, completed
}

type CompleteTaskArgs struct {
	TaskID uint `json:"task_id"`
}

type UpdateTaskArgs struct {
	TaskID      uint    `json:"task_id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type DeleteTaskArgs struct {
	TaskID uint `json:"task_id"`
}

// ToolCall is one function call requested by the language model.
type ToolCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// ToolDefinition is the schema advertised to the completer.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// ChatCompleter is the external language model. This service only speaks
// the function-call contract; natural language understanding lives on the
// other side of this interface.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []ChatMessage, tools []ToolDefinition) (*Completion, error)
}

// AgentService translates completer tool calls into task CRUD, always on
// behalf of the authenticated user.
type AgentService struct {
	Tasks     *TaskService
	Completer ChatCompleter
}

const agentSystemPrompt = `You are a helpful task management assistant. You help users manage their todo list through natural conversation.

Available actions:
- Create tasks when the user mentions adding or remembering something
- List tasks when the user asks to see their tasks
- Mark tasks complete when the user says they finished something
- Update tasks when the user wants to change details
- Delete tasks when the user wants to remove them

When users reference tasks they use the task ID number shown in the list. Be concise, confirm actions, and ask for clarification if ambiguous.`

// ToolDefinitions returns the fixed schema for the five task tools.
func ToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolAddTask,
			Description: "Create a new task",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"title":       map[string]interface{}{"type": "string"},
					"description": map[string]interface{}{"type": "string"},
				},
				"required": []string{"title"},
			},
		},
		{
			Name:        ToolListTasks,
			Description: "List the user's tasks, optionally filtered by status",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"status": map[string]interface{}{"type": "string", "enum": []string{"all", "pending", "completed"}},
				},
			},
		},
		{
			Name:        ToolCompleteTask,
			Description: "Mark a task as completed",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"task_id": map[string]interface{}{"type": "integer"},
				},
				"required": []string{"task_id"},
			},
		},
		{
			Name:        ToolUpdateTask,
			Description: "Update a task's title or description",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"task_id":     map[string]interface{}{"type": "integer"},
					"title":       map[string]interface{}{"type": "string"},
					"description": map[string]interface{}{"type": "string"},
				},
				"required": []string{"task_id"},
			},
		},
		{
			Name:        ToolDeleteTask,
			Description: "Delete a task",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"task_id": map[string]interface{}{"type": "integer"},
				},
				"required": []string{"task_id"},
			},
		},
	}
}

// Dispatch executes one tool call for userID. Unknown tool names are an
// explicit error; tool-level failures come back as an error entry in the
// result so the model can relay them.
func (s *AgentService) Dispatch(ctx context.Context, userID string, call ToolCall) (map[string]interface{}, error) {
	switch call.Name {
	case ToolAddTask:
		var args AddTaskArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("decode %s arguments: %w", call.Name, err)
		}
		return s.addTask(ctx, userID, args), nil
	case ToolListTasks:
		var args ListTasksArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("decode %s arguments: %w", call.Name, err)
		}
		return s.listTasks(ctx, userID, args), nil
	case ToolCompleteTask:
		var args CompleteTaskArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("decode %s arguments: %w", call.Name, err)
		}
		return s.completeTask(ctx, userID, args), nil
	case ToolUpdateTask:
		var args UpdateTaskArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("decode %s arguments: %w", call.Name, err)
		}
		return s.updateTask(ctx, userID, args), nil
	case ToolDeleteTask:
		var args DeleteTaskArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, fmt.Errorf("decode %s arguments: %w", call.Name, err)
		}
		return s.deleteTask(ctx, userID, args), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, call.Name)
	}
}

func (s *AgentService) addTask(ctx context.Context, userID string, args AddTaskArgs) map[string]interface{} {
	task, err := s.Tasks.CreateTask(ctx, userID, dto.TaskCreateRequest{
		Title:       args.Title,
		Description: args.Description,
	})
	if err != nil {
		return map[string]interface{}{"error": fmt.Sprintf("Failed to create task: %v", err)}
	}
	return map[string]interface{}{
		"task_id": task.ID,
		"status":  "created",
		"title":   task.Title,
	}
}

func (s *AgentService) listTasks(ctx context.Context, userID string, args ListTasksArgs) map[string]interface{} {
	status := args.Status
	if status == "" {
		status = "all"
	}
	tasks, total, err := s.Tasks.ListTasks(ctx, repository.SearchOptions{
		UserID:   userID,
		Status:   status,
		PageSize: repository.MaxPageSize,
	})
	if err != nil {
		return map[string]interface{}{"error": fmt.Sprintf("Failed to list tasks: %v", err)}
	}

	listed := make([]map[string]interface{}, 0, len(tasks))
	for _, task := range tasks {
		listed = append(listed, map[string]interface{}{
			"id":        task.ID,
			"title":     task.Title,
			"completed": task.Completed,
			"priority":  task.Priority,
		})
	}
	return map[string]interface{}{"tasks": listed, "count": total}
}

func (s *AgentService) completeTask(ctx context.Context, userID string, args CompleteTaskArgs) map[string]interface{} {
	task, err := s.Tasks.SetCompletion(ctx, userID, args.TaskID, true)
	if err != nil {
		return map[string]interface{}{"error": "Task not found or access denied"}
	}
	return map[string]interface{}{
		"task_id": task.ID,
		"status":  "completed",
		"title":   task.Title,
	}
}

func (s *AgentService) updateTask(ctx context.Context, userID string, args UpdateTaskArgs) map[string]interface{} {
	task, err := s.Tasks.UpdateTask(ctx, userID, args.TaskID, dto.TaskUpdateRequest{
		Title:       args.Title,
		Description: args.Description,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return map[string]interface{}{"error": "Task not found or access denied"}
		}
		return map[string]interface{}{"error": fmt.Sprintf("Failed to update task: %v", err)}
	}
	return map[string]interface{}{
		"task_id": task.ID,
		"status":  "updated",
		"title":   task.Title,
	}
}

func (s *AgentService) deleteTask(ctx context.Context, userID string, args DeleteTaskArgs) map[string]interface{} {
	if err := s.Tasks.DeleteTask(ctx, userID, args.TaskID); err != nil {
		return map[string]interface{}{"error": "Task not found or access denied"}
	}
	return map[string]interface{}{
		"task_id": args.TaskID,
		"status":  "deleted",
	}
}

// Run sends the history to the completer, executes any tool calls, then
// asks for a closing message describing the results.
func (s *AgentService) Run(ctx context.Context, userID string, history []ChatMessage) (string, []dto.ChatToolCall, error) {
	if s.Completer == nil {
		return "", nil, errors.New("chat completer not configured")
	}

	messages := append([]ChatMessage{{Role: "system", Content: agentSystemPrompt}}, history...)

	completion, err := s.Completer.Complete(ctx, messages, ToolDefinitions())
	if err != nil {
		return "", nil, fmt.Errorf("completion failed: %w", err)
	}

	if len(completion.ToolCalls) == 0 {
		return completion.Content, []dto.ChatToolCall{}, nil
	}

	executed := make([]dto.ChatToolCall, 0, len(completion.ToolCalls))
	for _, call := range completion.ToolCalls {
		result, err := s.Dispatch(ctx, userID, call)
		if err != nil {
			result = map[string]interface{}{"error": err.Error()}
		}

		var args map[string]interface{}
		_ = json.Unmarshal(call.Arguments, &args)
		executed = append(executed, dto.ChatToolCall{
			Tool:      call.Name,
			Arguments: args,
			Result:    result,
		})
	}

	// Second round so the model can phrase the outcome for the user.
	resultsJSON, _ := json.Marshal(executed)
	messages = append(messages, ChatMessage{
		Role:    "assistant",
		Content: "Tool results: " + string(resultsJSON),
	})
	followUp, err := s.Completer.Complete(ctx, messages, nil)
	if err != nil {
		return "Done.", executed, nil
	}
	return followUp.Content, executed, nil
}
