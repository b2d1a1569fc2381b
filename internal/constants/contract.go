package constants

import "fmt"

// ModuleAddress is the account that publishes the bounty-board Move modules.
const ModuleAddress = "0x2e5f33f9b87b179dc3e162524731f4546c228ff65eb79121913ef583adfeac2d"

// Board module
const (
	BoardModuleName = "MoveMentBoard"

	CreateBoard                 = "create_board"
	AddRewardToBoard            = "add_reward_to_board"
	JoinBoard                   = "join_board"
	WithdrawRewardAndCloseBoard = "withdraw_reward_and_close_board"
	CreateTask                  = "create_task"
	CancelTask                  = "cancel_task"
	SubmitTaskProof             = "submit_task_proof"
	ReviewSubmission            = "review_submission"
	ResubmitTaskProof           = "resubmit_task_proof"
	AddReviewer                 = "add_reviewer"

	// view functions
	GetBoardCreatedInfo = "get_board_created_info"
	GetBoardInfo        = "get_board_info"
	GetTaskInfo         = "get_task_info"
	GetSubmissionInfo   = "get_submission_info"
	GetUserJoinBoards   = "get_user_join_boards"
	GetUserCreateBoards = "get_user_create_boards"

	BoardCreatedEvent   = "BoardCreatedEvent"
	BoardMetadataStruct = "BoardMetadata"
	TaskStruct          = "Task"
	SubmissionStruct    = "Submission"
)

// Profile module
const (
	ProfileModuleName = "MoveMentProfilePortal"

	CreateUserProfile   = "create_user_profile"
	GetUserProfile      = "get_user_profile"
	GetAllUserAddresses = "get_all_user_addresses"

	UserProfileStruct = "UserProfile"
)

// Coin types
const (
	CoinMove = "0x1::aptos_coin::AptosCoin"
)

// System addresses
const (
	ClockAddress = "0x6"
)

// OctasPerMove is the fixed-point scale of on-chain amounts.
const OctasPerMove = 100000000

// FunctionID returns the fully-qualified <address>::<module>::<function> identifier.
func FunctionID(moduleAddress, module, function string) string {
	return fmt.Sprintf("%s::%s::%s", moduleAddress, module, function)
}
