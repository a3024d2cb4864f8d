// Command-line chat client for the allocation assistant.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mesh05/Techolution-PRM/prm/client"
	"github.com/mesh05/Techolution-PRM/prm/utils/color"
)

func main() {
	baseURL := os.Getenv("PRM_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	args := os.Args[1:]
	if len(args) < 2 {
		fmt.Println("prmchat usage:")
		fmt.Println("  prmchat <username> <password>   # sign in and chat")
		os.Exit(1)
	}

	api := client.NewAPI(baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	sess, err := api.SignIn(ctx, args[0], args[1])
	cancel()
	if err != nil {
		fmt.Println(color.ColorError("sign-in failed: " + err.Error()))
		os.Exit(1)
	}

	ctrl := client.NewController(api, sess)
	if err := ctrl.LoadHistory(context.Background()); err != nil {
		fmt.Println(color.ColorWarning("could not load history: " + err.Error()))
	}

	fmt.Println()
	fmt.Println(color.ColorInfo("Signed in as " + sess.Username))
	fmt.Println("Conversation:", ctrl.ConversationID())
	fmt.Println()
	fmt.Println("You can:")
	fmt.Println("  - Ask for a resource allocation (e.g., 'Allocate 3 engineers to Project Apollo')")
	fmt.Println("  - Ask about resources, projects, skills, or availability")
	fmt.Println()
	fmt.Println("Commands: /new  /history  /result  exit")
	fmt.Println()

	printHistory(ctrl)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(color.ColorPrompt("prm> "))
		if !scanner.Scan() {
			break // EOF or error
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "exit" || line == "quit":
			fmt.Println("Goodbye!")
			return
		case line == "":
			continue
		case line == "/new":
			if err := ctrl.StartNewConversation(context.Background()); err != nil {
				fmt.Println(color.ColorError("could not start a new conversation: " + err.Error()))
				continue
			}
			fmt.Println(color.ColorInfo("New conversation: " + ctrl.ConversationID()))
		case line == "/history":
			printHistory(ctrl)
		case line == "/result":
			printResult(ctrl)
		default:
			if err := ctrl.AskQuestion(context.Background(), line); err != nil {
				fmt.Println(color.ColorError(err.Error()))
			}
			msgs := ctrl.Messages()
			if len(msgs) > 0 {
				fmt.Println(color.ColorAssistant(msgs[len(msgs)-1].Content))
			}
		}
		fmt.Println()
	}
}

func printHistory(ctrl *client.Controller) {
	for _, m := range ctrl.Messages() {
		switch m.Role {
		case "user":
			fmt.Println(color.ColorPrompt("you: ") + m.Content)
		default:
			fmt.Println(color.ColorAssistant(m.Role+": ") + m.Content)
		}
	}
}

func printResult(ctrl *client.Controller) {
	res := ctrl.Result()
	if res == nil {
		fmt.Println(color.ColorWarning("no allocation result yet"))
		return
	}
	fmt.Println(color.ColorInfo("Role: " + res.Role))
	for _, a := range res.Allocations {
		fmt.Printf("  - %s (%s, %.0f%% match)\n", a.Name, a.Proficiency, a.MatchPercentage)
		if len(a.Skills) > 0 {
			fmt.Println("      skills: " + strings.Join(a.Skills, ", "))
		}
		if a.Reasoning != "" {
			fmt.Println("      " + a.Reasoning)
		}
	}
	if res.TotalHours > 0 {
		fmt.Printf("Total hours: %.0f\n", res.TotalHours)
	}
	if res.Plan != "" {
		fmt.Println("Plan:", res.Plan)
	}
}
