package renderer

// Attribute locations match lines.Flatten: position, direction, uv, strip end.
const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aDirection;
layout (location = 2) in vec2 aUV;
layout (location = 3) in float aStripEnd;

uniform mat4 uView;
uniform mat4 uProjection;
uniform int uMode;
uniform float uStripWidth;
uniform float uDepthCueing;
uniform vec2 uDepthRange;
uniform bool uEnableClipping;
uniform vec4 uClipPlane;

out vec3 vColor;
out vec2 vUV;
out float vViewDepth;

void main() {
    vec4 viewPos = uView * vec4(aPosition, 1.0);
    float depth = -viewPos.z;

    if (uMode != 0) {
        // Offset across the line in the screen plane so the ribbon always faces the camera.
        vec3 dir = mat3(uView) * aDirection;
        vec3 side = cross(dir, vec3(0.0, 0.0, 1.0));
        if (length(side) < 1e-6) {
            side = vec3(1.0, 0.0, 0.0);
        }
        float t = clamp((depth - uDepthRange.x) / max(uDepthRange.y - uDepthRange.x, 1e-6), 0.0, 1.0);
        float width = uStripWidth / (1.0 + uDepthCueing * t);
        viewPos.xyz += normalize(side) * (aUV.y - 0.5) * width;
    }

    gl_Position = uProjection * viewPos;
    gl_ClipDistance[0] = uEnableClipping ? dot(vec4(aPosition, 1.0), uClipPlane) : 1.0;

    vColor = abs(aDirection);
    vUV = aUV;
    vViewDepth = -viewPos.z;
}
`

const lineFragmentShader = `
#version 410 core

in vec3 vColor;
in vec2 vUV;
in float vViewDepth;

uniform int uMode;
uniform float uPercentageBlack;
uniform float uHaloMaxDepth;
uniform vec2 uNearFar;

out vec4 FragColor;

float windowDepth(float z) {
    float n = uNearFar.x;
    float f = uNearFar.y;
    float ndc = (f + n) / (f - n) - (2.0 * f * n) / ((f - n) * z);
    return ndc * 0.5 + 0.5;
}

void main() {
    if (uMode == 0) {
        FragColor = vec4(vColor, 1.0);
        gl_FragDepth = gl_FragCoord.z;
        return;
    }

    // 0 on the line centre, 1 on the ribbon edge.
    float d = abs(vUV.y - 0.5) * 2.0;
    bool border = d > 1.0 - uPercentageBlack;
    FragColor = border ? vec4(0.0, 0.0, 0.0, 1.0) : vec4(vColor, 1.0);

    if (uMode == 2) {
        // Push the border back so it hides lines behind but never those it touches.
        float offset = border ? uHaloMaxDepth * d : 0.0;
        gl_FragDepth = windowDepth(vViewDepth + offset);
    } else {
        gl_FragDepth = gl_FragCoord.z;
    }
}
`

const bboxVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uView;
uniform mat4 uProjection;

void main() {
    gl_Position = uProjection * uView * vec4(aPosition, 1.0);
}
`

const bboxFragmentShader = `
#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
    FragColor = uColor;
}
`
