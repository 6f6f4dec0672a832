package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "加载中..."
	}

	sections := []string{
		m.renderHeader(),
		"",
	}

	items := m.visible()
	switch {
	case m.loading && len(items) == 0:
		sections = append(sections, m.styles.Dim.Render("加载中..."))
	case len(items) == 0:
		sections = append(sections,
			m.styles.Normal.Render("暂无提醒"),
			m.styles.Dim.Render("请在管理端添加提醒"))
	default:
		for i, item := range items {
			sections = append(sections, m.renderCard(item, i == m.selected, m.width))
		}
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Pin the status bar to the bottom edge.
	bodyHeight := lipgloss.Height(body)
	if pad := m.height - bodyHeight - 1; pad > 0 {
		body += strings.Repeat("\n", pad)
	}

	return body + "\n" + m.renderStatusBar(len(items))
}

func (m *Model) renderHeader() string {
	now := m.now()

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Date.Render(m.chineseDate(now)),
		m.styles.Clock.Render(now.Format(m.config.TimeFormat)),
	)

	indicator := m.styles.Online.Render("● 在线")
	if !m.online {
		indicator = m.styles.Offline.Render("○ 离线")
		if !m.cachedAt.IsZero() {
			indicator += m.styles.Dim.Render(
				fmt.Sprintf(" · 数据更新于 %s", m.cachedAt.Format(m.config.TimeFormat)))
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(indicator)
	if gap < 1 {
		gap = 1
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), indicator)
	return header + "\n" + m.styles.Dim.Render(strings.Repeat("─", max(m.width, 1)))
}

func (m *Model) renderStatusBar(count int) string {
	left := fmt.Sprintf(" 提醒: %d", count)

	right := "回车 播报 | r 刷新 | s 语音开关 | q 退出"
	if m.message != "" {
		right = m.styles.Message.Render(m.message)
	}

	width := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if width < 0 {
		width = 0
	}

	middle := strings.Repeat(" ", width)

	return m.styles.Help.Render(left + middle + right)
}
