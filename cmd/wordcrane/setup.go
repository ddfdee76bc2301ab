package main

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hipsterbrown/feetech-servo/feetech"

	"github.com/gwillem/wordcrane/pkg/robot"
)

var (
	subHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type SetupCommand struct {
	Port string `long:"port" description:"Serial port of the follower arm (default: scan)"`
}

func (c *SetupCommand) Execute(args []string) error {
	cfg, log, closer, err := loadRuntime()
	if err != nil {
		return err
	}
	defer closer.Close()

	fmt.Println(headerStyle.Render("Wordcrane Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━"))
	fmt.Println()

	ctx := context.Background()
	port := c.Port
	if port == "" {
		if port, err = choosePort(ctx); err != nil {
			return quitOnAbort(err)
		}
	}
	log.Info().Str("port", port).Msg("calibrating follower")

	fmt.Println()
	fmt.Println(subHeaderStyle.Render("━━━ Calibrating Follower Arm ━━━"))
	fmt.Println()
	cal, err := calibrateArm(ctx, port)
	if err != nil {
		return err
	}

	rc := &robot.Config{Follower: robot.ArmConfig{Port: port, Calibration: cal}}
	if err := rc.SaveTo(cfg.RobotConfig); err != nil {
		return fmt.Errorf("save %s: %w", cfg.RobotConfig, err)
	}
	log.Info().Str("file", cfg.RobotConfig).Msg("calibration saved")

	fmt.Println()
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", cfg.RobotConfig)
	fmt.Println()
	fmt.Println("Play with the arm attached: " + headerStyle.Render("wordcrane play --mirror"))
	return nil
}

func choosePort(ctx context.Context) (string, error) {
	fmt.Println("Scanning for robot arms...")
	arms, err := robot.FindArms(ctx)
	if err != nil {
		return "", err
	}
	switch len(arms) {
	case 0:
		return "", fmt.Errorf("no SO-101 arm found, make sure it is connected and powered on")
	case 1:
		fmt.Printf("  Found SO-101 arm on %s\n", arms[0].Port)
		return arms[0].Port, nil
	}

	options := make([]huh.Option[string], 0, len(arms))
	for _, a := range arms {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%d servos)", a.Port, len(a.Servos)), a.Port))
	}

	var port string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which arm should follow the crane?").
				Options(options...).
				Value(&port),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("choose port: %w", err)
	}
	return port, nil
}

// calibrateArm records the range of motion of each joint while the user
// moves the arm by hand, keeping the default crane angle spans.
func calibrateArm(ctx context.Context, port string) (robot.Calibration, error) {
	bus, servos, err := robot.Connect(ctx, port)
	if err != nil {
		return nil, err
	}
	defer bus.Close()

	// Disable all servos so user can move arm freely
	for _, servo := range servos {
		servo.Disable(ctx)
	}

	fmt.Println(subHeaderStyle.Render("Record range of motion"))
	fmt.Println("Move the shoulder, the elbow and the gripper to both ends of their range.")
	fmt.Println()

	joints := robot.Joints()
	cur := make(map[robot.MotorName]int)
	lo := make(map[robot.MotorName]int)
	hi := make(map[robot.MotorName]int)
	for _, name := range joints {
		pos, _ := servos[name].Position(ctx)
		cur[name], lo[name], hi[name] = pos, pos, pos
	}

	p := tea.NewProgram(calibrationModel{
		joints:       joints,
		servos:       servos,
		spans:        robot.DefaultCalibration(),
		curPositions: cur,
		minPositions: lo,
		maxPositions: hi,
	})
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run calibration: %w", err)
	}
	return final.(calibrationModel).calibration(), nil
}

// calibrationModel samples the joints while they are moved by hand and
// shows where each one would put the on-screen crane.
type calibrationModel struct {
	joints       []robot.MotorName
	servos       map[robot.MotorName]*feetech.Servo
	spans        robot.Calibration
	curPositions map[robot.MotorName]int
	minPositions map[robot.MotorName]int
	maxPositions map[robot.MotorName]int
	quitting     bool
}

type sampleMsg time.Time

func sample() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return sampleMsg(t)
	})
}

func (m calibrationModel) Init() tea.Cmd {
	return sample()
}

func (m calibrationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case sampleMsg:
		ctx := context.Background()
		for _, name := range m.joints {
			if pos, err := m.servos[name].Position(ctx); err == nil {
				m.record(name, pos)
			}
		}
		return m, sample()
	}
	return m, nil
}

func (m calibrationModel) record(name robot.MotorName, pos int) {
	m.curPositions[name] = pos
	m.minPositions[name] = min(m.minPositions[name], pos)
	m.maxPositions[name] = max(m.maxPositions[name], pos)
}

// calibration is the recorded ranges with the crane angle spans.
func (m calibrationModel) calibration() robot.Calibration {
	cal := make(robot.Calibration, len(m.joints))
	for _, name := range m.joints {
		mc := m.spans[name]
		mc.RangeMin = m.minPositions[name]
		mc.RangeMax = m.maxPositions[name]
		cal[name] = mc
	}
	return cal
}

// crane describes the current position in crane terms: an angle for the
// arm joints, open or closed for the gripper.
func (m calibrationModel) crane(name robot.MotorName, mc robot.MotorCalibration) (now, span string) {
	norm := mc.Normalize(m.curPositions[name])
	if mc.AngleMin == mc.AngleMax {
		if norm < 0 {
			return "closed", "open..closed"
		}
		return "open", "open..closed"
	}
	deg := mc.ToAngle(norm) * 180 / math.Pi
	return fmt.Sprintf("%.0f°", deg), fmt.Sprintf("%.0f°..%.0f°", mc.AngleMin, mc.AngleMax)
}

func (m calibrationModel) View() string {
	if m.quitting {
		return ""
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	thStyle := headerStyle.Padding(0, 1)
	jointStyle := cellStyle.Foreground(lipgloss.Color("14"))
	craneStyle := cellStyle.Foreground(lipgloss.Color("208"))
	okStyle := cellStyle.Foreground(lipgloss.Color("10"))
	lowStyle := cellStyle.Foreground(lipgloss.Color("9"))

	cal := m.calibration()
	rows := make([][]string, 0, len(m.joints))
	wide := make([]bool, 0, len(m.joints))
	for _, name := range m.joints {
		mc := cal[name]
		now, span := m.crane(name, mc)
		width := mc.RangeMax - mc.RangeMin
		wide = append(wide, width > 500)
		rows = append(rows, []string{
			string(name),
			strconv.Itoa(m.curPositions[name]),
			fmt.Sprintf("%d..%d", mc.RangeMin, mc.RangeMax),
			strconv.Itoa(width),
			now,
			span,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Joint", "Raw", "Seen", "Width", "Crane", "Maps to").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return thStyle
			case col == 0:
				return jointStyle
			case col == 3 && row >= 0 && row < len(wide):
				if wide[row] {
					return okStyle
				}
				return lowStyle
			case col == 4:
				return craneStyle
			default:
				return cellStyle
			}
		})

	return t.Render() + "\n\n" + dimStyle.Render("Move each joint end to end, then press Enter")
}
