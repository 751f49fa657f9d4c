package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/castroluiz/plastiq/internal/cli/formatter"
	"github.com/castroluiz/plastiq/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

const dateLayout = "2006-01-02"

func errorText(err error) string {
	return "\n  " + formatter.StyleRed.Render("Erro: "+err.Error())
}

func successText(msg string) string {
	return "\n  " + formatter.StyleGreen.Render("✔") + " " + msg
}

// nextOrderNumber derives the next PED-YYYYMMDD-NNN number for the given
// start date by scanning the existing orders of that day.
func nextOrderNumber(ctx context.Context, app *App, start time.Time) string {
	prefix := "PED-" + start.Format("20060102") + "-"
	seq := 1
	if orders, err := app.Orders.List(ctx); err == nil {
		for _, o := range orders {
			if !strings.HasPrefix(o.OrderNumber, prefix) {
				continue
			}
			if n, err := strconv.Atoi(strings.TrimPrefix(o.OrderNumber, prefix)); err == nil && n >= seq {
				seq = n + 1
			}
		}
	}
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// ── machine registration ─────────────────────────────────────────────────────

func startMachineWizard(state *SharedState) tea.Cmd {
	var number, brand, capacity, nextMaint string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Numero da maquina").
				Placeholder("INJ-01").
				Value(&number).
				Validate(validateRequired("numero")),
			huh.NewInput().
				Title("Marca").
				Placeholder("Romi").
				Value(&brand).
				Validate(validateRequired("marca")),
			huh.NewInput().
				Title("Capacidade (ton)").
				Placeholder("150").
				Value(&capacity).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Proxima manutencao (YYYY-MM-DD, opcional)").
				Value(&nextMaint).
				Validate(validateOptionalDate),
		),
	).WithTheme(plastiqHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg {
			tons, _ := strconv.ParseFloat(capacity, 64)
			m, err := domain.NewMachine(number, brand, tons)
			if err != nil {
				return cmdOutputMsg{output: errorText(err)}
			}
			if nextMaint != "" {
				d, _ := time.Parse(dateLayout, nextMaint)
				m.NextMaintenanceDate = &d
			}
			if err := state.App.Machines.Register(context.Background(), m); err != nil {
				return cmdOutputMsg{output: errorText(err)}
			}
			return cmdOutputMsg{output: successText("Maquina " + formatter.Bold(m.Number) + " cadastrada")}
		}
	}

	return startWizardCmd(state, "Nova maquina", form, done)
}

// ── mold registration ────────────────────────────────────────────────────────

func startMoldWizard(state *SharedState) tea.Cmd {
	var name, manufacturer, cavities, interval string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nome do molde").
				Placeholder("Tampa 38mm").
				Value(&name).
				Validate(validateRequired("nome")),
			huh.NewInput().
				Title("Fabricante").
				Value(&manufacturer),
			huh.NewInput().
				Title("Numero de cavidades").
				Placeholder("4").
				Value(&cavities).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Manutencao a cada N ciclos (opcional)").
				Value(&interval).
				Validate(validateOptionalNonNegativeInt),
		),
	).WithTheme(plastiqHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg {
			var every *int
			if n := parsePositiveInt(interval, 0); n > 0 {
				every = &n
			}
			m, err := domain.NewMold(name, manufacturer, parsePositiveInt(cavities, 0), every)
			if err != nil {
				return cmdOutputMsg{output: errorText(err)}
			}
			if err := state.App.Molds.Register(context.Background(), m); err != nil {
				return cmdOutputMsg{output: errorText(err)}
			}
			return cmdOutputMsg{output: successText("Molde " + formatter.Bold(m.Name) + " cadastrado")}
		}
	}

	return startWizardCmd(state, "Novo molde", form, done)
}

// ── order creation ───────────────────────────────────────────────────────────

// startOrderWizard chains three steps: pick an available machine, pick an
// available mold, then fill in the order details.
func startOrderWizard(state *SharedState) tea.Cmd {
	ctx := context.Background()
	app := state.App

	machineID := new(string)
	machineForm := wizardSelectMachine(ctx, app, true, machineID)
	if machineForm == nil {
		return func() tea.Msg {
			return cmdOutputMsg{output: errorText(fmt.Errorf("nenhuma maquina disponivel"))}
		}
	}

	return startWizardCmd(state, "Novo pedido", machineForm, func() tea.Cmd {
		moldID := new(string)
		moldForm := wizardSelectMold(ctx, app, true, moldID)
		if moldForm == nil {
			return func() tea.Msg {
				return cmdOutputMsg{output: errorText(fmt.Errorf("nenhum molde disponivel"))}
			}
		}
		return startWizardCmd(state, "Novo pedido", moldForm, func() tea.Cmd {
			return startOrderDetailsWizard(state, *machineID, *moldID)
		})
	})
}

func startOrderDetailsWizard(state *SharedState, machineID, moldID string) tea.Cmd {
	var customer, qty, cycle, masterbatch, pieceWeight, start, due, notes string
	material := new(string)
	priority := new(string)
	*priority = "2"

	materialOptions := make([]huh.Option[string], 0, len(state.App.Materials))
	for _, m := range state.App.Materials {
		materialOptions = append(materialOptions, huh.NewOption(m, m))
	}

	today := time.Now().Format(dateLayout)
	start = today

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cliente").
				Value(&customer).
				Validate(validateRequired("cliente")),
			huh.NewInput().
				Title("Quantidade (pecas)").
				Placeholder("10000").
				Value(&qty).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Tempo de ciclo (s)").
				Placeholder("30").
				Value(&cycle).
				Validate(validatePositiveFloat),
			huh.NewSelect[string]().
				Title("Materia prima").
				Options(materialOptions...).
				Value(material),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Peso da peca (g)").
				Placeholder("12.5").
				Value(&pieceWeight).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Masterbatch (%)").
				Placeholder("2").
				Value(&masterbatch).
				Validate(validateOptionalDecimal),
			huh.NewInput().
				Title("Inicio (YYYY-MM-DD)").
				Placeholder(today).
				Value(&start).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Entrega (YYYY-MM-DD, vazio = estimar)").
				Value(&due).
				Validate(validateOptionalDate),
			huh.NewSelect[string]().
				Title("Prioridade").
				Options(
					huh.NewOption("Alta", "1"),
					huh.NewOption("Normal", "2"),
					huh.NewOption("Baixa", "3"),
				).
				Value(priority),
			huh.NewInput().
				Title("Observacoes").
				Value(&notes),
		),
	).WithTheme(plastiqHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg {
			ctx := context.Background()
			startDate, err := time.Parse(dateLayout, start)
			if err != nil {
				startDate = domain.Today()
			}
			cycleSec, _ := strconv.ParseFloat(cycle, 64)
			weight, _ := strconv.ParseFloat(pieceWeight, 64)
			mbPct, _ := strconv.ParseFloat(masterbatch, 64)
			prio, _ := strconv.Atoi(*priority)

			o := &domain.ProductionOrder{
				OrderNumber:    nextOrderNumber(ctx, state.App, startDate),
				Customer:       customer,
				MachineID:      machineID,
				MoldID:         moldID,
				QtyTarget:      parsePositiveInt(qty, 0),
				CycleSeconds:   cycleSec,
				Material:       *material,
				MasterbatchPct: mbPct,
				PieceWeightG:   weight,
				StartDate:      startDate,
				Priority:       domain.Priority(prio),
				Notes:          notes,
			}
			if due != "" {
				d, _ := time.Parse(dateLayout, due)
				o.DueDate = &d
			}

			if err := state.App.Orders.Create(ctx, o); err != nil {
				return cmdOutputMsg{output: errorText(err)}
			}
			msg := fmt.Sprintf("Pedido %s criado — %s, entrega %s",
				formatter.Bold(o.OrderNumber),
				formatter.FormatWeight(o.TotalWeightKg),
				o.DueDate.Format(dateLayout))
			return cmdOutputMsg{output: successText(msg)}
		}
	}

	return startWizardCmd(state, "Novo pedido", form, done)
}

// ── shift appointment ────────────────────────────────────────────────────────

func startAppointmentWizard(state *SharedState) tea.Cmd {
	ctx := context.Background()

	orderID := new(string)
	orderForm := wizardSelectActiveOrder(ctx, state.App, orderID)
	if orderForm == nil {
		return func() tea.Msg {
			return cmdOutputMsg{output: errorText(fmt.Errorf("nenhum pedido ativo para apontar"))}
		}
	}

	return startWizardCmd(state, "Apontamento", orderForm, func() tea.Cmd {
		return startAppointmentDetailsWizard(state, *orderID)
	})
}

func startAppointmentDetailsWizard(state *SharedState, orderID string) tea.Cmd {
	var date, qty, scrap, downtime, reason, operator, notes string
	shift := new(string)
	*shift = string(state.CurrentShift())
	date = time.Now().Format(dateLayout)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Data (YYYY-MM-DD)").
				Value(&date).
				Validate(validateOptionalDate),
			huh.NewSelect[string]().
				Title("Turno").
				Options(shiftOptions(state.App)...).
				Value(shift),
			huh.NewInput().
				Title("Pecas produzidas").
				Value(&qty).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Refugo (kg, opcional)").
				Value(&scrap).
				Validate(validateOptionalDecimal),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Parada (min, opcional)").
				Value(&downtime).
				Validate(validateOptionalNonNegativeInt),
			huh.NewInput().
				Title("Motivo da parada").
				Value(&reason),
			huh.NewInput().
				Title("Operador").
				Placeholder("Carlos Mendes").
				Value(&operator).
				Validate(validateRequired("operador")),
			huh.NewInput().
				Title("Observacoes").
				Value(&notes),
		),
	).WithTheme(plastiqHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg {
			d, err := time.Parse(dateLayout, date)
			if err != nil {
				d = domain.Today()
			}
			a := &domain.Appointment{
				OrderID:        orderID,
				Date:           d,
				Shift:          domain.Shift(*shift),
				QtyProduced:    parsePositiveInt(qty, 0),
				ScrapKg:        parseOptionalDecimal(scrap),
				DowntimeMin:    parsePositiveInt(downtime, 0),
				DowntimeReason: reason,
				Operator:       operator,
				Notes:          notes,
			}
			o, err := state.App.Production.LogAppointment(context.Background(), a)
			if err != nil {
				return cmdOutputMsg{output: errorText(err)}
			}
			msg := fmt.Sprintf("Apontadas %s pecas em %s — %s",
				formatter.FormatInt(a.QtyProduced),
				formatter.Bold(o.OrderNumber),
				formatter.RenderProgress(o.Progress()/100, 20))
			if o.Status == domain.OrderCompleted {
				msg += "\n  " + formatter.StyleGreen.Render("Pedido concluido, equipamento liberado.")
			}
			return cmdOutputMsg{output: successText(msg)}
		}
	}

	return startWizardCmd(state, "Apontamento", form, done)
}

func shiftOptions(app *App) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(app.ShiftWindows))
	for _, w := range app.ShiftWindows {
		options = append(options, huh.NewOption(w.Label(), string(w.Shift)))
	}
	return options
}

// ── maintenance ──────────────────────────────────────────────────────────────

func startMaintenanceWizard(state *SharedState) tea.Cmd {
	kind := new(string)
	*kind = string(domain.KindMachine)

	kindForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Tipo de equipamento").
				Options(
					huh.NewOption("Maquina", string(domain.KindMachine)),
					huh.NewOption("Molde", string(domain.KindMold)),
				).
				Value(kind),
		),
	).WithTheme(plastiqHuhTheme()).WithShowHelp(false)

	return startWizardCmd(state, "Manutencao", kindForm, func() tea.Cmd {
		ctx := context.Background()
		equipmentID := new(string)

		var form *huh.Form
		if *kind == string(domain.KindMachine) {
			form = wizardSelectMachine(ctx, state.App, false, equipmentID)
		} else {
			form = wizardSelectMold(ctx, state.App, false, equipmentID)
		}
		if form == nil {
			return func() tea.Msg {
				return cmdOutputMsg{output: errorText(fmt.Errorf("nenhum equipamento cadastrado"))}
			}
		}
		return startWizardCmd(state, "Manutencao", form, func() tea.Cmd {
			return startMaintenanceDetailsWizard(state, domain.EquipmentKind(*kind), *equipmentID)
		})
	})
}

func startMaintenanceDetailsWizard(state *SharedState, kind domain.EquipmentKind, equipmentID string) tea.Cmd {
	var date, description, technician, cost, downtime string
	mtype := new(string)
	*mtype = string(domain.MaintenancePreventive)
	date = time.Now().Format(dateLayout)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Data (YYYY-MM-DD)").
				Value(&date).
				Validate(validateOptionalDate),
			huh.NewSelect[string]().
				Title("Tipo").
				Options(
					huh.NewOption("Preventiva", string(domain.MaintenancePreventive)),
					huh.NewOption("Corretiva", string(domain.MaintenanceCorrective)),
				).
				Value(mtype),
			huh.NewInput().
				Title("Descricao").
				Value(&description).
				Validate(validateRequired("descricao")),
			huh.NewInput().
				Title("Tecnico").
				Value(&technician).
				Validate(validateRequired("tecnico")),
			huh.NewInput().
				Title("Custo (R$, opcional)").
				Value(&cost).
				Validate(validateOptionalDecimal),
			huh.NewInput().
				Title("Horas paradas (opcional)").
				Value(&downtime).
				Validate(validateOptionalDecimal),
		),
	).WithTheme(plastiqHuhTheme()).WithShowHelp(false)

	done := func() tea.Cmd {
		return func() tea.Msg {
			d, err := time.Parse(dateLayout, date)
			if err != nil {
				d = domain.Today()
			}
			hours, _ := strconv.ParseFloat(downtime, 64)
			rec := &domain.MaintenanceRecord{
				EquipmentKind: kind,
				EquipmentID:   equipmentID,
				Date:          d,
				Type:          domain.MaintenanceType(*mtype),
				Description:   description,
				Technician:    technician,
				Cost:          parseOptionalDecimal(cost),
				DowntimeHours: hours,
			}
			if err := state.App.Maintenance.Register(context.Background(), rec); err != nil {
				return cmdOutputMsg{output: errorText(err)}
			}
			return cmdOutputMsg{output: successText("Manutencao registrada, equipamento liberado")}
		}
	}

	return startWizardCmd(state, "Manutencao", form, done)
}

// ── order cancellation ───────────────────────────────────────────────────────

func startCancelWizard(state *SharedState) tea.Cmd {
	ctx := context.Background()

	orderID := new(string)
	orderForm := wizardSelectActiveOrder(ctx, state.App, orderID)
	if orderForm == nil {
		return func() tea.Msg {
			return cmdOutputMsg{output: errorText(fmt.Errorf("nenhum pedido ativo para cancelar"))}
		}
	}

	return startWizardCmd(state, "Cancelar pedido", orderForm, func() tea.Cmd {
		var reason string
		confirmed := new(bool)

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Motivo do cancelamento").
					Value(&reason).
					Validate(validateRequired("motivo")),
				huh.NewConfirm().
					Title("Confirmar cancelamento? O equipamento sera liberado.").
					Affirmative("Sim").
					Negative("Nao").
					Value(confirmed),
			),
		).WithTheme(plastiqHuhTheme()).WithShowHelp(false)

		return startWizardCmd(state, "Cancelar pedido", form, func() tea.Cmd {
			return func() tea.Msg {
				if !*confirmed {
					return cmdOutputMsg{output: "\n  " + formatter.Dim("Cancelamento abortado.")}
				}
				if err := state.App.Orders.Cancel(context.Background(), *orderID, reason); err != nil {
					return cmdOutputMsg{output: errorText(err)}
				}
				return cmdOutputMsg{output: successText("Pedido cancelado, equipamento liberado")}
			}
		})
	})
}
