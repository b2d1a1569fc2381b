package main

import (
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List every BoardCreatedEvent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		events, err := bounty.GetBoardCreatedEvents(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd, events)
	},
}

var boardCmd = &cobra.Command{
	Use:   "board <board-id>",
	Short: "Show a board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		board, err := bounty.GetBoardInfo(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, board)
	},
}

var taskCmd = &cobra.Command{
	Use:   "task <board-id> <task-id>",
	Short: "Show a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		task, err := bounty.GetTaskInfo(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd, task)
	},
}

var submissionCmd = &cobra.Command{
	Use:   "submission <board-id> <task-id> <submitter>",
	Short: "Show a submission; prints null when there is none",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		sub, err := bounty.GetSubmissionInfo(ctx, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		return printJSON(cmd, sub)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile <address>",
	Short: "Show a user profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		profile, err := bounty.GetUserProfile(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, profile)
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List every address with a profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		addresses, err := bounty.GetAllUserAddresses(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd, addresses)
	},
}
